package services

import (
	"strings"

	"codereview-backend/internal/models"
)

const reviewPreamble = "请扮演资深前端代码评审者，对下面的代码进行结构化审查。请遵循“总体评价 -> 问题列表 -> 可行动 TODO” 的顺序输出，并使用 Markdown。"

const reviewClosing = "请至少给出三条问题，并提供修复建议与严重程度。"

// BuildReviewPrompt assembles the user prompt for a review. Empty optional
// sections are left out; sections are separated by a blank line.
func BuildReviewPrompt(req models.ReviewRequest) string {
	sections := []string{reviewPreamble}

	if req.Context != "" {
		sections = append(sections, "背景信息："+req.Context)
	}
	if req.Framework != "" {
		sections = append(sections, "框架/技术栈："+req.Framework)
	}
	if req.Filename != "" {
		sections = append(sections, "文件名："+req.Filename)
	}

	sections = append(sections,
		"代码：\n```\n"+strings.TrimSpace(req.Code)+"\n```",
		reviewClosing,
	)

	return strings.Join(sections, "\n\n")
}

// ReviewMessages wraps the review prompt as a single user turn.
func ReviewMessages(req models.ReviewRequest) []models.AgentMessage {
	return []models.AgentMessage{{Role: models.RoleUser, Content: BuildReviewPrompt(req)}}
}
