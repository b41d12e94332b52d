// Package gemini implements bfchat.Responder and bfchat.TokenCounter with
// the Google Gemini API.
package gemini

import (
	"context"
	"fmt"
	"strings"

	"github.com/fwojciec/bfchat"
	"google.golang.org/genai"
)

// DefaultModel is the Gemini model used when none is configured.
const DefaultModel = "gemini-2.0-flash"

// Ensure Responder implements bfchat.Responder at compile time.
var _ bfchat.Responder = (*Responder)(nil)

// Responder answers questions about a seed website using Gemini.
type Responder struct {
	client  *genai.Client
	model   string
	seedURL string
}

// NewResponder creates a new Responder grounded on seedURL.
// An empty model selects DefaultModel.
func NewResponder(client *genai.Client, model, seedURL string) *Responder {
	if model == "" {
		model = DefaultModel
	}
	return &Responder{client: client, model: model, seedURL: seedURL}
}

// Answer sends one prompt per question and returns the model's text.
func (r *Responder) Answer(ctx context.Context, question string, corpus *bfchat.Corpus) (string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return "", bfchat.Errorf(bfchat.EINVALID, "question required")
	}

	result, err := r.client.Models.GenerateContent(ctx, r.model,
		[]*genai.Content{genai.NewContentFromText(BuildUserPrompt(r.seedURL, question, corpus), genai.RoleUser)},
		BuildConfig(),
	)
	if err != nil {
		return "", bfchat.Errorf(bfchat.EUNAVAILABLE, "gemini request failed: %v", err)
	}
	if result == nil {
		return "", bfchat.Errorf(bfchat.EINTERNAL, "gemini returned nil result")
	}

	text := result.Text()
	if text == "" {
		return "", bfchat.Errorf(bfchat.EUNAVAILABLE, "gemini returned an empty answer")
	}
	return text, nil
}

// BuildConfig returns the GenerateContentConfig for Gemini API calls.
func BuildConfig() *genai.GenerateContentConfig {
	temp := float32(0.4)
	return &genai.GenerateContentConfig{
		SystemInstruction: &genai.Content{
			Parts: []*genai.Part{{
				Text: "Tu es un assistant d'information sur l'allaitement. Tu réponds en français, avec précision et bienveillance, sans jamais remplacer l'avis d'un professionnel de santé.",
			}},
		},
		Temperature: &temp,
	}
}

// BuildUserPrompt builds the prompt for one question. It restricts the
// model to the seed site, asks for the source URLs and gives the fixed
// sentence to use when the site has no answer. When corpus holds entries
// they are embedded as context ahead of the question.
func BuildUserPrompt(seedURL, question string, corpus *bfchat.Corpus) string {
	var sb strings.Builder

	if corpus.Len() > 0 {
		sb.WriteString("<context>\n")
		for _, e := range corpus.Entries {
			fmt.Fprintf(&sb, "<page url=%q>\n%s\n</page>\n", e.URL, e.Text)
		}
		sb.WriteString("</context>\n\n")
	}

	fmt.Fprintf(&sb, "Réponds à la question suivante en utilisant uniquement les informations du site web %s, toutes ses sections et toutes ses pages.", seedURL)
	if corpus.Len() > 0 {
		sb.WriteString(" Le contexte ci-dessus reprend le contenu de ces pages.")
	}
	sb.WriteString("\n\n")
	sb.WriteString("Indique clairement à la fin de ta réponse les liens des pages du site que tu as utilisées. La réponse doit contenir ces URL.\n\n")
	fmt.Fprintf(&sb, "Si la réponse ne se trouve pas sur le site, réponds simplement : \"%s\"\n\n", bfchat.DeclineMessage)
	fmt.Fprintf(&sb, "Question : %s\n", question)

	return sb.String()
}
