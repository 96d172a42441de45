package ai

import (
	"context"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/contactsupport/backend/internal/reqctx"
	"google.golang.org/genai"
)

// MockResponse is stored when no model is configured or generation fails.
// The message itself is already saved; the real answer can be added later.
const MockResponse = "Thank you for your message. Our support team will reach out shortly."

const instructions = `You are an AI customer support agent.

Your ONLY job is to answer Frequently Asked Questions (FAQs)
about our company's products and services.

Do not answer unrelated questions.
If you don't know, politely say: "I'm sorry, I can only help with product FAQs."

Always reply professionally, clearly, and briefly.
Keep responses brief (2-3 sentences).`

// Responder produces a support answer for a customer message.
type Responder interface {
	Respond(ctx context.Context, name, email, message string) string
}

type GeminiResponder struct {
	apiKey string
	model  string
}

func NewGeminiResponder(apiKey, model string) *GeminiResponder {
	if model == "" {
		model = "gemini-2.0-flash"
	}
	return &GeminiResponder{apiKey: strings.TrimSpace(apiKey), model: model}
}

// Configured reports whether an API key is present. Without one, Respond
// still works but only serves FAQ matches and the canned acknowledgment.
func (r *GeminiResponder) Configured() bool {
	return r.apiKey != ""
}

func (r *GeminiResponder) Model() string {
	return r.model
}

// Respond checks the FAQ knowledge base first and only calls the model when
// nothing matches. It never returns an error: any failure degrades to
// MockResponse so the caller can persist something either way.
func (r *GeminiResponder) Respond(ctx context.Context, name, email, message string) string {
	rid := reqctx.RID(ctx)
	msgID := reqctx.MessageID(ctx)

	if faq := FindMatchingFAQ(message); faq != nil {
		log.Printf("[ai] rid=%s msg=%d stage=faq_hit question=%q", rid, msgID, faq.Question)
		return personalize(faq.Answer, name)
	}

	if !r.Configured() {
		log.Printf("[ai] rid=%s msg=%d stage=no_api_key using mock response", rid, msgID)
		return MockResponse
	}

	start := time.Now()
	client, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: r.apiKey})
	if err != nil {
		log.Printf("[ai] rid=%s msg=%d stage=client_init err=%v", rid, msgID, err)
		return MockResponse
	}

	prompt := buildPrompt(name, email, message)
	parts := []*genai.Part{
		genai.NewPartFromText(instructions),
		genai.NewPartFromText(prompt),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}

	log.Printf("[ai] rid=%s msg=%d stage=gemini_start model=%s", rid, msgID, r.model)
	res, err := client.Models.GenerateContent(ctx, r.model, contents, config)
	if err != nil {
		log.Printf("[ai] rid=%s msg=%d stage=gemini_fail model=%s err=%v", rid, msgID, r.model, err)
		return MockResponse
	}

	text := strings.TrimSpace(res.Text())
	log.Printf("[ai] rid=%s msg=%d stage=gemini_done model=%s len=%d genMs=%d",
		rid, msgID, r.model, len(text), time.Since(start).Milliseconds())
	if len(text) <= 10 {
		log.Printf("[ai] rid=%s msg=%d stage=short_response text=%q using mock", rid, msgID, text)
		return MockResponse
	}
	return text
}

func buildPrompt(name, email, message string) string {
	sep := strings.Repeat("=", 60)
	var b strings.Builder
	b.WriteString("Use the following FAQs as reference when answering questions:\n")
	b.WriteString(FormatFAQsForPrompt())
	b.WriteString(sep + "\n\nCUSTOMER QUESTION:\n" + sep + "\n")
	if name != "" {
		fmt.Fprintf(&b, "Customer Name: %s\n", name)
	}
	if email != "" {
		fmt.Fprintf(&b, "Customer Email: %s\n", email)
	}
	fmt.Fprintf(&b, "\nCustomer Question: %s\n\n%s\n", message, sep)
	b.WriteString("Please provide a helpful, professional, and clear response to this FAQ. " +
		"If the question matches one of the FAQs above, use that answer as a reference. " +
		"If this is not a product/service FAQ, politely decline. " +
		"Keep your response brief (2-3 sentences) and directly address the question.")
	return b.String()
}

func personalize(answer, name string) string {
	if name == "" || answer == "" {
		return answer
	}
	first := answer[:1]
	if strings.ToUpper(first) != first {
		answer = strings.ToUpper(first) + answer[1:]
	}
	return fmt.Sprintf("Hi %s, %s", name, answer)
}
