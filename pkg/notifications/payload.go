package notifications

import (
	"fmt"
	"strings"

	"github.com/gimlet-io/rocketchat-notifier/pkg/model"
)

const successGlyph = ":heavy_check_mark:"
const failureGlyph = ":x:"

const jobLinkFormat = "Job [*%s - #%d*](%s)"

const colorRed = "#ff0000"
const colorYellow = "#ffcc00"
const colorGreen = "#009933"

type Payload struct {
	Channel     string       `json:"channel"`
	Text        string       `json:"text"`
	Attachments []Attachment `json:"attachments"`
}

type Attachment struct {
	Title     string `json:"title"`
	TitleLink string `json:"title_link"`
	Color     string `json:"color"`
	Text      string `json:"text"`
}

// BuildPayload renders the Rocket.Chat message for a build.
// The test summary attachment is only added if requested and the build has test results.
func BuildPayload(record model.Record, decision Decision, channel string, includeTestSummary bool) *Payload {
	payload := &Payload{
		Channel:     channel,
		Text:        text(record, decision),
		Attachments: []Attachment{},
	}

	if includeTestSummary && record.TestCounts != nil {
		payload.Attachments = append(payload.Attachments, testSummary(record.BuildURL, *record.TestCounts))
	}

	return payload
}

func text(record model.Record, decision Decision) string {
	// nothing meaningful to say about aborted or running builds
	if record.Outcome == model.Unknown && decision.Transition != BackToNormal {
		return ""
	}

	job := fmt.Sprintf(jobLinkFormat, record.ProjectName, record.BuildNumber, record.BuildURL)
	switch decision.Transition {
	case BackToNormal:
		return fmt.Sprintf("%s %s is back to normal", successGlyph, job)
	case Failed:
		return fmt.Sprintf("%s %s failed", failureGlyph, job)
	case Unstable:
		return fmt.Sprintf("%s %s is unstable", failureGlyph, job)
	default:
		return fmt.Sprintf("%s %s is successful", successGlyph, job)
	}
}

func testSummary(buildURL string, counts model.TestCounts) Attachment {
	passed := counts.Passed()

	color := colorGreen
	if counts.Failed > 0 {
		color = colorRed
	} else if counts.Skipped > 0 {
		color = colorYellow
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%s %d test(s) passed\n", glyph(passed > 0), passed))
	sb.WriteString(fmt.Sprintf("%s %d test(s) failed\n", glyph(counts.Failed == 0), counts.Failed))
	sb.WriteString(fmt.Sprintf("%s %d test(s) skipped\n", glyph(counts.Skipped == 0), counts.Skipped))

	return Attachment{
		Title:     "Tests",
		TitleLink: testReportLink(buildURL),
		Color:     color,
		Text:      sb.String(),
	}
}

func testReportLink(buildURL string) string {
	return strings.TrimRight(buildURL, "/") + "/testReport/"
}

func glyph(ok bool) string {
	if ok {
		return successGlyph
	}
	return failureGlyph
}
