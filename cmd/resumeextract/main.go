// resumeextract 本地调试工具：跑通单个PDF的提取流水线并输出JSON结果
// 不依赖MySQL/Redis/MinIO，只需要NLP标注服务和参考数据文件
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"

	"resume-agent-go/internal/config"
	"resume-agent-go/internal/extractor"
	"resume-agent-go/internal/logger"
	"resume-agent-go/internal/nlp"
	"resume-agent-go/internal/parser"
	"resume-agent-go/internal/refdata"
)

func main() {
	_ = godotenv.Load()

	var (
		configPath     string
		filePath       string
		requiredSkills []string
		pretty         bool
	)
	pflag.StringVarP(&configPath, "config", "c", "", "配置文件路径")
	pflag.StringVarP(&filePath, "file", "f", "", "简历文件路径 (.pdf 或 .txt)")
	pflag.StringSliceVarP(&requiredSkills, "required", "r", nil, "要求技能列表，给定时额外输出匹配结果")
	pflag.BoolVar(&pretty, "pretty", true, "美化JSON输出")
	pflag.Parse()

	if filePath == "" {
		fmt.Fprintln(os.Stderr, "用法: resumeextract -f resume.pdf [-r python,sql]")
		pflag.PrintDefaults()
		os.Exit(2)
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}
	logger.Init(logger.Config{Level: "warn", Format: "pretty"})

	ctx := context.Background()
	text, err := loadResumeText(ctx, filePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "读取简历文本失败: %v\n", err)
		os.Exit(1)
	}

	recognizer, err := nlp.NewSpacyClient(
		cfg.NLP.Endpoint,
		cfg.NLP.GeneralModel,
		cfg.NLP.SkillModel,
		nlp.WithTimeout(time.Duration(cfg.NLP.TimeoutSeconds)*time.Second),
	)
	if err != nil {
		fmt.Fprintf(os.Stderr, "创建NLP标注客户端失败: %v\n", err)
		os.Exit(1)
	}

	fieldExtractor, err := extractor.NewExtractor(recognizer, refdata.Load(&cfg.RefData))
	if err != nil {
		fmt.Fprintf(os.Stderr, "初始化字段提取器失败: %v\n", err)
		os.Exit(1)
	}

	record, err := fieldExtractor.Extract(ctx, text)
	if err != nil {
		fmt.Fprintf(os.Stderr, "字段提取失败: %v\n", err)
		os.Exit(1)
	}

	output := map[string]interface{}{
		"record":             record,
		"completeness_score": extractor.CompletenessScore(record),
	}
	if len(requiredSkills) > 0 {
		output["match"] = extractor.MatchSkills(record.Skills, requiredSkills)
	}

	encoder := json.NewEncoder(os.Stdout)
	if pretty {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		fmt.Fprintf(os.Stderr, "输出结果失败: %v\n", err)
		os.Exit(1)
	}
}

// loadResumeText 按扩展名选择文本来源：PDF走提取器，其余按纯文本读取
func loadResumeText(ctx context.Context, filePath string) (string, error) {
	if strings.EqualFold(filepath.Ext(filePath), ".pdf") {
		pdfExtractor, err := parser.NewEinoPDFTextExtractor(ctx)
		if err != nil {
			return "", err
		}
		text, _, err := pdfExtractor.ExtractFromFile(ctx, filePath)
		return text, err
	}

	data, err := os.ReadFile(filePath)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
