package services

import (
	"github.com/vishwapandiyan/Resume-screener/internal/core/ports/driven"
	"github.com/vishwapandiyan/Resume-screener/internal/logger"
)

// defaultExpansionPrompt is the fallback prompt when no PromptStore is configured.
// Placeholder: query.
const defaultExpansionPrompt = `Generate 3 short semantic query expansions (comma-separated) for searching a resume.
Query: %s
Return only expansions separated by commas.`

// defaultAnswerPrompt is the HR assistant prompt.
// Placeholders: job description block, candidate block, conversation block, question, résumé context.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultAnswerPrompt = `You are an intelligent HR hiring assistant. Your role is to help HR professionals make informed decisions about candidates.

Guidelines for your responses:
- Be conversational, professional, and helpful
- Provide actionable insights for HR decision-making
- Highlight strengths, potential concerns, and recommendations
- Use specific examples from the resume when available
- Compare candidate qualifications against the job requirements
- Be honest about limitations in the information
- Structure your response clearly with bullet points or sections when helpful
- End with a brief recommendation or next steps when appropriate

%s%s%sHR Question: %s

Resume Content:
%s

Please provide a comprehensive, HR-focused response that helps evaluate this candidate against the job requirements:`

// defaultSuggestPrompt asks for interview questions.
// Placeholder: candidate block.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultSuggestPrompt = `%sAs an HR assistant, generate 4 intelligent, specific questions that would help evaluate this candidate for a technical role.

Focus on:
- Technical competency and project depth
- Problem-solving abilities and achievements
- Cultural fit and communication skills
- Potential red flags or areas of concern

Make questions specific, actionable, and tailored to what you can see in their background.
Return only the 4 questions, separated by commas.`

// DefaultPrompts returns the built-in prompt templates keyed by prompt name.
// File-backed prompt stores seed user-editable files from these.
func DefaultPrompts() map[string]string {
	return map[string]string{
		driven.PromptQueryExpansion:   defaultExpansionPrompt,
		driven.PromptAnswer:           defaultAnswerPrompt,
		driven.PromptSuggestQuestions: defaultSuggestPrompt,
	}
}

// loadPrompt loads a prompt from the store, falling back to the default if unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil || prompt == "" {
		if err != nil {
			logger.Debug("Prompt %s unavailable, using default: %v", name, err)
		}
		return fallback
	}
	return prompt
}
