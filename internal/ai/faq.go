package ai

import (
	"fmt"
	"regexp"
	"strings"
)

// FAQ is one canned question/answer pair the responder can reuse without
// calling the model.
type FAQ struct {
	Question string
	Answer   string
}

var faqDatabase = []FAQ{
	{
		Question: "How can I reset my password?",
		Answer:   "Go to the login page and click 'Forgot Password'. You'll receive a reset email.",
	},
	{
		Question: "What is your refund policy?",
		Answer:   "We offer full refunds within 7 days of purchase if the product is defective.",
	},
	{
		Question: "Do you offer 24/7 customer support?",
		Answer:   "Yes, our AI and human agents are available 24/7 to assist you.",
	},
	{
		Question: "How can I contact customer support?",
		Answer:   "You can contact our support team via the 'Contact Us' page or by emailing support@example.com.",
	},
	{
		Question: "Can I change my registered email address?",
		Answer:   "Yes, go to your account settings and update your email address, then verify the new one.",
	},
	{
		Question: "How do I delete my account?",
		Answer:   "To delete your account, go to Settings > Privacy > Delete Account. You'll receive a confirmation email.",
	},
	{
		Question: "What payment methods do you accept?",
		Answer:   "We accept credit/debit cards, PayPal, and Stripe payments.",
	},
	{
		Question: "Can I upgrade or downgrade my plan?",
		Answer:   "Yes, you can change your subscription plan anytime from your account settings.",
	},
	{
		Question: "Do you have a free trial?",
		Answer:   "Yes, we offer a 7-day free trial for new users to explore all premium features.",
	},
	{
		Question: "Is my data secure with your service?",
		Answer:   "Absolutely. We use advanced encryption and follow strict data privacy standards to keep your data safe.",
	},
	{
		Question: "Can I access the service from my mobile device?",
		Answer:   "Yes, our platform is fully responsive and works seamlessly on all mobile devices.",
	},
	{
		Question: "What should I do if I don't receive the password reset email?",
		Answer:   "Please check your spam folder first. If you still can't find it, contact support to resend the link.",
	},
	{
		Question: "How long does it take to process a refund?",
		Answer:   "Refunds are usually processed within 3-5 business days after approval.",
	},
	{
		Question: "How can I update my billing information?",
		Answer:   "Go to your account's Billing section and click 'Update Payment Details' to make changes.",
	},
	{
		Question: "Can I pause my subscription temporarily?",
		Answer:   "Currently, we don't offer subscription pauses, but you can cancel and reactivate anytime.",
	},
	{
		Question: "How can I cancel my subscription?",
		Answer:   "You can cancel your subscription by going to your account settings and clicking 'Cancel Subscription'.",
	},
	{
		Question: "Is there a way to export my data?",
		Answer:   "Yes, you can export your account data from Settings > Data Export anytime.",
	},
}

var wordRegex = regexp.MustCompile(`\b\w+\b`)

var stopWords = map[string]struct{}{
	"i": {}, "my": {}, "me": {}, "you": {}, "your": {}, "the": {}, "a": {}, "an": {},
	"is": {}, "are": {}, "was": {}, "were": {}, "do": {}, "does": {}, "did": {},
	"can": {}, "could": {}, "what": {}, "how": {}, "where": {}, "when": {}, "why": {},
	"who": {}, "which": {}, "this": {}, "that": {}, "to": {}, "for": {}, "of": {},
	"in": {}, "on": {}, "at": {}, "by": {}, "with": {}, "from": {},
}

// Phrases that strongly tie a question to a specific FAQ.
var keyPhrases = []string{
	"reset password", "forgot password", "password reset",
	"refund policy", "refund",
	"24/7", "customer support", "contact support",
	"change email", "update email", "email address",
	"delete account",
	"payment method", "payment",
	"upgrade plan", "downgrade plan", "subscription",
	"free trial",
	"data secure", "data security", "privacy",
	"mobile device", "mobile",
	"password reset email",
	"process refund", "refund time",
	"billing information", "update billing",
	"pause subscription",
	"export data",
}

const matchThreshold = 0.3

func keywords(s string) map[string]struct{} {
	out := map[string]struct{}{}
	for _, w := range wordRegex.FindAllString(strings.ToLower(s), -1) {
		if _, stop := stopWords[w]; stop {
			continue
		}
		out[w] = struct{}{}
	}
	return out
}

// FindMatchingFAQ scores the question against the knowledge base using keyword
// overlap plus a key-phrase boost, and returns the best match when it clears
// the threshold. Exact question matches (case-insensitive) win outright.
func FindMatchingFAQ(question string) *FAQ {
	q := strings.ToLower(strings.TrimSpace(question))
	if q == "" {
		return nil
	}

	for i := range faqDatabase {
		if strings.ToLower(strings.TrimSpace(faqDatabase[i].Question)) == q {
			return &faqDatabase[i]
		}
	}

	userWords := keywords(q)
	var best *FAQ
	bestScore := 0.0

	for i := range faqDatabase {
		faq := &faqDatabase[i]
		faqLower := strings.ToLower(faq.Question)
		faqWords := keywords(faqLower)

		common := 0
		for w := range userWords {
			if _, ok := faqWords[w]; ok {
				common++
			}
		}
		if common == 0 {
			continue
		}
		denom := len(faqWords)
		if denom < 1 {
			denom = 1
		}
		score := float64(common) / float64(denom)

		for _, phrase := range keyPhrases {
			if strings.Contains(q, phrase) && strings.Contains(faqLower, phrase) {
				score += 0.3
				break
			}
		}

		if score > bestScore {
			bestScore = score
			best = faq
		}
	}

	if best != nil && bestScore >= matchThreshold {
		return best
	}
	return nil
}

// FormatFAQsForPrompt renders the knowledge base as a numbered block for
// inclusion in the model prompt.
func FormatFAQsForPrompt() string {
	var b strings.Builder
	b.WriteString("FREQUENTLY ASKED QUESTIONS (FAQs):\n")
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	for i, faq := range faqDatabase {
		fmt.Fprintf(&b, "%d. Q: %s\n   A: %s\n\n", i+1, faq.Question, faq.Answer)
	}
	return b.String()
}
