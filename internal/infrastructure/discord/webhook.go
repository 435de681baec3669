package discord

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/majikku/community-api/internal/core/domain"
	"github.com/majikku/community-api/internal/core/ports"
)

// Embed colors used by the staff channels.
const (
	colorPurple = 10182117 // applications and wiki review
	colorRed    = 15158332 // ban appeals
)

type embedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

type embedFooter struct {
	Text string `json:"text"`
}

type embedThumbnail struct {
	URL string `json:"url"`
}

type embed struct {
	Title       string          `json:"title"`
	Description string          `json:"description,omitempty"`
	Color       int             `json:"color"`
	Fields      []embedField    `json:"fields"`
	Footer      embedFooter     `json:"footer"`
	Thumbnail   *embedThumbnail `json:"thumbnail,omitempty"`
}

// webhookPayload targets a forum channel: each post opens a thread.
type webhookPayload struct {
	ThreadName string  `json:"thread_name"`
	Embeds     []embed `json:"embeds"`
}

// WebhookConfig holds the per-channel webhook URLs.
type WebhookConfig struct {
	ReviewURL      string
	ApplicationURL string
	AppealURL      string
}

// WebhookNotifier delivers embeds to the staff forum channels. It implements
// ports.ReviewNotifier and ports.ReportNotifier.
type WebhookNotifier struct {
	cfg  WebhookConfig
	http *http.Client
	log  zerolog.Logger
}

func NewWebhookNotifier(cfg WebhookConfig, log zerolog.Logger) *WebhookNotifier {
	return &WebhookNotifier{
		cfg:  cfg,
		http: &http.Client{Timeout: requestTimeout},
		log:  log,
	}
}

// NotifySubmission posts a review request when a wiki edit enters the queue.
func (n *WebhookNotifier) NotifySubmission(ctx context.Context, sub *domain.WikiSubmission, preview string) error {
	e := embed{
		Title: fmt.Sprintf("Wiki Submission #%d: %s", sub.ID, sub.Title),
		Color: colorPurple,
		Fields: []embedField{
			{Name: "Category", Value: orNA(sub.Category), Inline: true},
			{Name: "Type", Value: string(sub.Type), Inline: true},
			{Name: "Author", Value: orNA(sub.AuthorName), Inline: true},
			{Name: "Content Preview", Value: orNA(preview)},
		},
		Footer: embedFooter{Text: "Majikku Network Wiki Review"},
	}
	thread := fmt.Sprintf("WIKI - %s - %s", sub.Slug, sub.AuthorName)
	return n.post(ctx, n.cfg.ReviewURL, webhookPayload{ThreadName: thread, Embeds: []embed{e}})
}

// NotifyApplication posts a staff application to the applications channel.
func (n *WebhookNotifier) NotifyApplication(ctx context.Context, report ports.ApplicationReport) error {
	e := embed{
		Title: "New Application: " + orNA(report.Team),
		Color: colorPurple,
		Fields: []embedField{
			{Name: "Discord User", Value: fmt.Sprintf("<@%s> (%s)", report.Actor.ID, report.Actor.Username)},
			{Name: "Hytale Name", Value: orNA(report.HytaleName), Inline: true},
			{Name: "Age", Value: orNA(report.Age), Inline: true},
			{Name: "Timezone", Value: orNA(report.Timezone), Inline: true},
			{Name: "Availability", Value: orNA(report.Availability)},
		},
		Footer: embedFooter{Text: "Majikku Network Application System"},
	}
	if report.Actor.AvatarURL != "" {
		e.Thumbnail = &embedThumbnail{URL: report.Actor.AvatarURL}
	}
	for question, answer := range report.Answers {
		if answer == "" {
			continue
		}
		e.Fields = append(e.Fields, embedField{Name: question, Value: truncateAnswer(answer)})
	}

	name := report.HytaleName
	if name == "" {
		name = report.Actor.Username
	}
	thread := fmt.Sprintf("APP - %s - %s", orNA(report.Team), name)
	return n.post(ctx, n.cfg.ApplicationURL, webhookPayload{ThreadName: thread, Embeds: []embed{e}})
}

// NotifyAppeal posts a ban appeal to the appeals channel.
func (n *WebhookNotifier) NotifyAppeal(ctx context.Context, report ports.AppealReport) error {
	e := embed{
		Title:       "New Ban Appeal",
		Description: "A user has submitted a ban appeal.",
		Color:       colorRed,
		Fields: []embedField{
			{Name: "Discord User", Value: fmt.Sprintf("%s (%s)", report.Actor.Username, report.Actor.ID)},
			{Name: "Ban Reason (User Stated)", Value: orNA(report.Reason)},
			{Name: "Appeal / Apology", Value: orNA(report.Apology)},
		},
		Footer: embedFooter{Text: "Majikku Network Appeal System"},
	}
	thread := "APPEAL - " + report.Actor.Username
	return n.post(ctx, n.cfg.AppealURL, webhookPayload{ThreadName: thread, Embeds: []embed{e}})
}

func (n *WebhookNotifier) post(ctx context.Context, webhookURL string, payload webhookPayload) error {
	if webhookURL == "" {
		return fmt.Errorf("webhook: no URL configured")
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("webhook: encode payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := n.http.Do(req)
	if err != nil {
		return fmt.Errorf("webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("webhook: status %d", resp.StatusCode)
	}
	return nil
}

// truncateAnswer caps a free-form answer at Discord's 1024-char field limit,
// marking the cut.
func truncateAnswer(s string) string {
	const limit = 1000
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit]) + "..."
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}
