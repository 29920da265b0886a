package ai

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kokoro-dev/wellness-backend/internal/model"
	"github.com/kokoro-dev/wellness-backend/internal/tipctx"
	"google.golang.org/genai"
)

const focusPrompt = `You are a wellness coach. Given yesterday's metrics and the user's daily goals,
pick the single metric the user should focus on today and give one short, practical tip for it.
Answer on one line: the metric name wrapped as $sleep$, $water$ or $meditation$, followed by the tip.
Example: $water$ Keep a bottle on your desk and finish it before lunch.
No other markers, lists, or markdown.`

// FocusClient asks Gemini for a focus metric and daily tip.
type FocusClient struct {
	model      string
	httpClient *http.Client
}

func NewFocusClient(httpClient *http.Client) *FocusClient {
	m := os.Getenv("GEMINI_TIP_MODEL")
	if m == "" {
		m = "gemini-2.5-flash"
	}
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 20 * time.Second}
	}
	return &FocusClient{model: m, httpClient: httpClient}
}

// Suggest sends yesterday's metrics and goals to Gemini and parses the
// focus metric plus tip from the response.
func (c *FocusClient) Suggest(ctx context.Context, rec *model.DailyMetricRecord, goals *model.WellnessGoals) (model.MetricKind, string, error) {
	rid := tipctx.RID(ctx)
	uid := tipctx.UID(ctx)
	start := time.Now()
	client, err := genai.NewClient(ctx, nil)
	if err != nil {
		log.Printf("[tip] rid=%s uid=%s stage=client_init err=%v", rid, uid, err)
		return "", "", err
	}

	parts := []*genai.Part{
		genai.NewPartFromText(focusPrompt),
		genai.NewPartFromText(summarize(rec, goals)),
	}
	contents := []*genai.Content{
		genai.NewContentFromParts(parts, genai.RoleUser),
	}
	temp := float32(0)
	config := &genai.GenerateContentConfig{
		Temperature: &temp,
	}
	genStart := time.Now()
	log.Printf("[tip] rid=%s uid=%s stage=gemini_start model=%s", rid, uid, c.model)
	res, err := client.Models.GenerateContent(ctx, c.model, contents, config)
	if err != nil {
		log.Printf("[tip] rid=%s uid=%s stage=gemini_fail model=%s err=%v", rid, uid, c.model, err)
		return "", "", fmt.Errorf("gemini generate: %w", err)
	}
	genDur := time.Since(genStart)
	rawText := res.Text()
	log.Printf("[tip] rid=%s uid=%s stage=gemini_done model=%s genMs=%d len=%d", rid, uid, c.model, genDur.Milliseconds(), len(rawText))
	kind, tip, err := ParseFocusWithTip(rawText)
	if err != nil {
		text := strings.ReplaceAll(rawText, "\n", " ")
		if len(text) > 80 {
			text = text[:80]
		}
		log.Printf("[tip] rid=%s uid=%s stage=parse_fail text=%q err=%v", rid, uid, text, err)
		return "", "", err
	}
	log.Printf("[tip] rid=%s uid=%s stage=parse_ok focus=%s totalMs=%d", rid, uid, kind, time.Since(start).Milliseconds())
	return kind, tip, nil
}

func summarize(rec *model.DailyMetricRecord, goals *model.WellnessGoals) string {
	var b strings.Builder
	if rec != nil {
		fmt.Fprintf(&b, "Yesterday: sleep %dh, water %dml, meditation %dmin.\n",
			rec.SleepHours, rec.WaterML, rec.MeditationMinutes)
	} else {
		b.WriteString("Yesterday: no metrics logged.\n")
	}
	if goals != nil {
		fmt.Fprintf(&b, "Goals: sleep %dh, water %dml, meditation %dmin.",
			goals.SleepHoursGoal, goals.WaterMLGoal, goals.MeditationMinutesGoal)
	} else {
		b.WriteString("Goals: not set.")
	}
	return b.String()
}
