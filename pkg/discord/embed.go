package discord

import (
	"fmt"
	"strings"
	"time"

	"github.com/bwmarrin/discordgo"

	"localefinder/internal/domain"
	"localefinder/internal/domain/entities"
	"localefinder/pkg/tz"
)

const (
	colorOK      = 0x57F287
	colorFailure = 0xED4245
	colorDryRun  = 0x5865F2

	// Discord rejects embeds with more fields.
	maxFields = 25
)

// BuildReportEmbed summarizes a run: totals in the description, one field per
// changed or failed catalog.
func BuildReportEmbed(r *entities.Report, loc *time.Location) *discordgo.MessageEmbed {
	added, removed := r.Totals()
	failures := r.Failures()

	title := "Translation catalogs updated"
	color := colorOK
	switch {
	case len(failures) > 0:
		title = fmt.Sprintf("Translation catalogs updated with %d failure(s)", len(failures))
		color = colorFailure
	case r.DryRun:
		title = "Translation catalogs (dry run)"
		color = colorDryRun
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**Locales:** %s\n", strings.Join(r.Locales, ", "))
	fmt.Fprintf(&b, "**Keys:** %d found in %d files\n", r.Keys, r.Files)
	fmt.Fprintf(&b, "**Changes:** +%d / -%d across %d written catalog(s)", added, removed, r.Written())
	if r.Demoted > 0 {
		fmt.Fprintf(&b, "\n**Moved to default catalog:** %d", r.Demoted)
	}
	if r.TranslationFailures > 0 {
		fmt.Fprintf(&b, "\n**Untranslated (fallback to key):** %d", r.TranslationFailures)
	}

	var fields []*discordgo.MessageEmbedField
	for _, c := range r.Catalogs {
		if len(fields) == maxFields {
			break
		}
		if !c.Failed() && c.Added == 0 && c.Removed == 0 {
			continue
		}
		value := fmt.Sprintf("+%d / -%d", c.Added, c.Removed)
		if c.Failed() {
			value = DescribeError(c.Err)
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   domain.CatalogName(c.Locale, c.Namespace),
			Value:  value,
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title:       title,
		Description: b.String(),
		Color:       color,
		Fields:      fields,
		Footer: &discordgo.MessageEmbedFooter{
			Text: fmt.Sprintf("run %s • %s • %s", r.RunID, tz.Format(r.StartedAt, loc), r.Duration().Round(time.Millisecond)),
		},
	}
}
