package report

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/nguyentantai21042004/transcript-flow/internal/event"
)

const (
	fontName  = "Times New Roman"
	fontSize  = 13
	titleSize = 16
	textColor = "000000"
	metaColor = "555555"
)

var (
	reHeading  = regexp.MustCompile(`^(#{1,6})\s+(.+)$`)
	reBold     = regexp.MustCompile(`\*\*(.+?)\*\*`)
	reBullet   = regexp.MustCompile(`^[\-\*]\s+(.+)$`)
	reNumbered = regexp.MustCompile(`^\d+\.\s+(.+)$`)
)

var ErrIncompleteRun = errors.New("run did not complete")

// WriteDocx writes title, source details, transcript, paraphrase,
// translation and tags of a finished run. Failed runs are rejected.
func (w *implWriter) WriteDocx(ctx context.Context, result *event.Result, outputPath string) error {
	if result == nil || !result.Done {
		return ErrIncompleteRun
	}

	doc, err := godocx.NewDocument()
	if err != nil {
		return fmt.Errorf("create document: %w", err)
	}

	title := "Video Transcript"
	if m := result.Metadata; m != nil {
		if m.Title != "" {
			title = m.Title
		}
		addStyledRun(doc.AddParagraph(""), title, true, titleSize)
		addMetaLine(doc, "Channel", m.Channel)
		addMetaLine(doc, "Platform", m.Platform)
		addMetaLine(doc, "Source", m.VideoURL)
	} else {
		addStyledRun(doc.AddParagraph(""), title, true, titleSize)
	}

	addSection(doc, "Transcript", result.Transcript)
	addSection(doc, "Paraphrase", result.Paraphrase)
	addSection(doc, "Translation", result.Translation)
	if len(result.Tags) > 0 {
		addSection(doc, "Tags", strings.Join(result.Tags, ", "))
	}

	if err := doc.SaveTo(outputPath); err != nil {
		return fmt.Errorf("save docx %s: %w", outputPath, err)
	}

	w.logger.Debug(ctx, "Report written: %s", outputPath)
	return nil
}

func addMetaLine(doc *docx.RootDoc, label, value string) {
	if value == "" {
		return
	}
	p := doc.AddParagraph("")
	p.AddText(label + ": ").Font(fontName).Size(fontSize).Color(metaColor).Bold(true)
	p.AddText(value).Font(fontName).Size(fontSize).Color(metaColor)
}

// addSection writes a heading followed by markdown body text. Empty bodies
// are omitted together with their heading.
func addSection(doc *docx.RootDoc, heading, body string) {
	if strings.TrimSpace(body) == "" {
		return
	}
	doc.AddParagraph("")
	addStyledRun(doc.AddParagraph(""), heading, true, headingSize(2))
	addMarkdown(doc, body)
}

// addMarkdown renders the subset of markdown models tend to produce:
// headings, bullets, numbered items and **bold** spans.
func addMarkdown(doc *docx.RootDoc, markdown string) {
	for _, line := range strings.Split(markdown, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || trimmed == "---" {
			continue
		}

		if m := reHeading.FindStringSubmatch(trimmed); m != nil {
			addStyledRun(doc.AddParagraph(""), m[2], true, headingSize(len(m[1])+1))
			continue
		}

		if m := reBullet.FindStringSubmatch(trimmed); m != nil {
			addRichText(doc.AddParagraph(""), "• "+m[1])
			continue
		}

		if reNumbered.MatchString(trimmed) {
			addRichText(doc.AddParagraph(""), trimmed)
			continue
		}

		addRichText(doc.AddParagraph(""), trimmed)
	}
}

func headingSize(level int) uint64 {
	switch level {
	case 1:
		return 16
	case 2:
		return 15
	case 3:
		return 14
	default:
		return fontSize
	}
}

func addStyledRun(p *docx.Paragraph, text string, bold bool, size uint64) {
	run := p.AddText(cleanMarkdownInline(text)).Font(fontName).Size(size).Color(textColor)
	if bold {
		run.Bold(true)
	}
}

func addRichText(p *docx.Paragraph, text string) {
	parts := reBold.Split(text, -1)
	matches := reBold.FindAllStringSubmatch(text, -1)

	for i, part := range parts {
		if part != "" {
			p.AddText(cleanMarkdownInline(part)).Font(fontName).Size(fontSize).Color(textColor)
		}
		if i < len(matches) {
			p.AddText(cleanMarkdownInline(matches[i][1])).Font(fontName).Size(fontSize).Color(textColor).Bold(true)
		}
	}
}

func cleanMarkdownInline(s string) string {
	s = strings.ReplaceAll(s, "**", "")
	s = strings.ReplaceAll(s, "__", "")
	s = strings.ReplaceAll(s, "`", "")
	return s
}
