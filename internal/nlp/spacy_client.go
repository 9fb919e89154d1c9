package nlp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// SpacyClient 通过HTTP调用spaCy标注sidecar服务
// 服务端加载两个模型：通用模型（实体+词性/词形）和单独训练的技能识别模型，
// 通过请求里的model字段选择
type SpacyClient struct {
	endpoint     string
	generalModel string
	skillModel   string
	httpClient   *http.Client
}

// SpacyOption SpacyClient的配置选项
type SpacyOption func(*SpacyClient)

// WithHTTPClient 配置自定义HTTP客户端（主要用于测试）
func WithHTTPClient(client *http.Client) SpacyOption {
	return func(c *SpacyClient) {
		c.httpClient = client
	}
}

// WithTimeout 配置单次标注请求的超时时间
func WithTimeout(timeout time.Duration) SpacyOption {
	return func(c *SpacyClient) {
		c.httpClient = &http.Client{Timeout: timeout}
	}
}

// NewSpacyClient 创建标注服务客户端
func NewSpacyClient(endpoint, generalModel, skillModel string, options ...SpacyOption) (*SpacyClient, error) {
	if endpoint == "" {
		return nil, fmt.Errorf("标注服务地址不能为空")
	}
	if generalModel == "" {
		return nil, fmt.Errorf("通用模型名不能为空")
	}
	if skillModel == "" {
		return nil, fmt.Errorf("技能模型名不能为空")
	}

	client := &SpacyClient{
		endpoint:     endpoint,
		generalModel: generalModel,
		skillModel:   skillModel,
		httpClient:   &http.Client{Timeout: 30 * time.Second},
	}

	for _, option := range options {
		option(client)
	}

	return client, nil
}

// annotateRequest 标注请求体
type annotateRequest struct {
	Text  string `json:"text"`
	Model string `json:"model"`
}

// annotateResponse 标注响应体
type annotateResponse struct {
	Entities []Entity `json:"entities"`
	Tokens   []Token  `json:"tokens"`
}

// Annotate 使用通用模型标注文本
func (c *SpacyClient) Annotate(ctx context.Context, text string) (*AnnotatedDocument, error) {
	var resp annotateResponse
	if err := c.doAnnotate(ctx, text, c.generalModel, &resp); err != nil {
		return nil, fmt.Errorf("通用模型标注失败: %w", err)
	}

	return &AnnotatedDocument{
		Text:     text,
		Entities: resp.Entities,
		Tokens:   resp.Tokens,
	}, nil
}

// RecognizeSkills 使用技能模型识别SKILL实体
func (c *SpacyClient) RecognizeSkills(ctx context.Context, text string) ([]Entity, error) {
	var resp annotateResponse
	if err := c.doAnnotate(ctx, text, c.skillModel, &resp); err != nil {
		return nil, fmt.Errorf("技能模型标注失败: %w", err)
	}

	var skills []Entity
	for _, ent := range resp.Entities {
		if ent.Label == LabelSkill {
			skills = append(skills, ent)
		}
	}
	return skills, nil
}

// doAnnotate 发送一次标注请求并解析响应
func (c *SpacyClient) doAnnotate(ctx context.Context, text, model string, result *annotateResponse) error {
	reqBody, err := json.Marshal(annotateRequest{Text: text, Model: model})
	if err != nil {
		return fmt.Errorf("序列化标注请求失败: %w", err)
	}

	url := c.endpoint + "/annotate"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(reqBody))
	if err != nil {
		return fmt.Errorf("创建标注请求失败: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("调用标注服务失败 (%s): %w", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("读取标注响应失败: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("标注服务返回状态 %d: %s", resp.StatusCode, string(body))
	}

	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("解析标注响应失败: %w", err)
	}

	return nil
}

// 确保SpacyClient实现了EntityRecognizer接口
var _ EntityRecognizer = (*SpacyClient)(nil)
