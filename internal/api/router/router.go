// Package router 注册HTTP路由并完成请求参数到handler的适配
package router

import (
	"context"
	"errors"
	"strconv"

	"github.com/cloudwego/hertz/pkg/app"
	"github.com/cloudwego/hertz/pkg/app/server"
	"github.com/cloudwego/hertz/pkg/common/utils"
	"github.com/cloudwego/hertz/pkg/protocol/consts"

	"resume-agent-go/internal/api/handler"
)

// RegisterRoutes 注册API路由
func RegisterRoutes(h *server.Hertz, resumeHandler *handler.ResumeHandler) {
	api := h.Group("/api/v1")

	api.POST("/resume/upload", func(c context.Context, ctx *app.RequestContext) {
		fileHeader, err := ctx.FormFile("file")
		if err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "文件未找到"})
			return
		}

		sourceChannel := ctx.PostForm("source_channel")
		if sourceChannel == "" {
			sourceChannel = "web_upload"
		}

		file, err := fileHeader.Open()
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": "打开文件失败"})
			return
		}
		defer file.Close()

		resp, err := resumeHandler.HandleResumeUpload(c, file, fileHeader.Filename, sourceChannel)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := resumeHandler.GetResumeRecord(c, submissionUUID)
		if errors.Is(err, handler.ErrSubmissionNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:uuid/file", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := resumeHandler.GetResumeFileURL(c, submissionUUID)
		if errors.Is(err, handler.ErrSubmissionNotFound) || errors.Is(err, handler.ErrRecordNotReady) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resume/:uuid/text", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		resp, err := resumeHandler.GetParsedResumeText(c, submissionUUID)
		if errors.Is(err, handler.ErrSubmissionNotFound) || errors.Is(err, handler.ErrRecordNotReady) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.GET("/resumes", func(c context.Context, ctx *app.RequestContext) {
		limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))
		offset, _ := strconv.Atoi(ctx.DefaultQuery("offset", "0"))

		resp, err := resumeHandler.ListResumes(c, limit, offset)
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.DELETE("/resume/:uuid", func(c context.Context, ctx *app.RequestContext) {
		submissionUUID := ctx.Param("uuid")
		err := resumeHandler.DeleteResume(c, submissionUUID)
		if errors.Is(err, handler.ErrSubmissionNotFound) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "deleted"})
	})

	api.POST("/match", func(c context.Context, ctx *app.RequestContext) {
		var req handler.MatchRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}

		resp, err := resumeHandler.MatchSkills(c, &req)
		if errors.Is(err, handler.ErrSubmissionNotFound) || errors.Is(err, handler.ErrRecordNotReady) {
			ctx.JSON(consts.StatusNotFound, utils.H{"error": err.Error()})
			return
		}
		if err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, resp)
	})

	api.POST("/requirements", func(c context.Context, ctx *app.RequestContext) {
		var req handler.RequirementRequest
		if err := ctx.BindJSON(&req); err != nil {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "请求体解析失败"})
			return
		}
		if err := resumeHandler.SaveRequirementProfile(c, &req); err != nil {
			ctx.JSON(consts.StatusInternalServerError, utils.H{"error": err.Error()})
			return
		}
		ctx.JSON(consts.StatusOK, utils.H{"status": "saved"})
	})

	api.GET("/skills/suggest", func(c context.Context, ctx *app.RequestContext) {
		jobTitle := ctx.Query("job")
		if jobTitle == "" {
			ctx.JSON(consts.StatusBadRequest, utils.H{"error": "缺少job参数"})
			return
		}
		ctx.JSON(consts.StatusOK, resumeHandler.SuggestSkills(jobTitle))
	})

	api.GET("/health", func(c context.Context, ctx *app.RequestContext) {
		status := resumeHandler.Health(c)
		if !status.Healthy() {
			ctx.JSON(consts.StatusServiceUnavailable, status)
			return
		}
		ctx.JSON(consts.StatusOK, status)
	})
}
