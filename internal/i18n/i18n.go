package i18n

import (
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"golang.org/x/text/language"
)

type Translations struct {
	bundle   *i18n.Bundle
	localize *i18n.Localizer
}

func NewTranslations(defaultLang string) (*Translations, error) {
	bundle := i18n.NewBundle(language.English)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)

	bundle.MustParseMessageFileBytes([]byte(defaultMessages), "default.en.toml")

	files, err := filepath.Glob("locales/active.*.toml")
	if err != nil {
		return nil, fmt.Errorf("error reading locales: %w", err)
	}

	for _, file := range files {
		if _, err := bundle.LoadMessageFile(file); err != nil {
			return nil, fmt.Errorf("error loading locale file %s: %w", file, err)
		}
	}

	localize := i18n.NewLocalizer(bundle, defaultLang)

	return &Translations{
		bundle:   bundle,
		localize: localize,
	}, nil
}

func (t *Translations) SetLanguage(lang string) error {
	for _, tag := range t.bundle.LanguageTags() {
		if tag.String() == lang {
			t.localize = i18n.NewLocalizer(t.bundle, lang)
			return nil
		}
	}
	return fmt.Errorf("language '%s' not supported", lang)
}

func (t *Translations) GetMessage(messageID string, count int, templateData map[string]interface{}) string {
	localized, err := t.localize.Localize(&i18n.LocalizeConfig{
		DefaultMessage: &i18n.Message{
			ID: messageID,
		},
		PluralCount:  count,
		TemplateData: templateData,
	})
	if err != nil {
		return "Translation missing: " + messageID
	}
	return localized
}

var defaultMessages = `
	[app_usage]
	other = "MCP server to manage and analyze pull requests"

	[serve_command_usage]
	other = "Start the MCP server"

	[check_command_usage]
	other = "Check the configuration and provider credentials"

	[serve_transport_usage]
	other = "MCP transport to use: stdio or sse"

	[serve_addr_usage]
	other = "Listen address for the sse transport"

	[error.review_failed]
	other = "Error reviewing PR: {{.Error}}"

	[error.describe_failed]
	other = "Error describing PR: {{.Error}}"

	[error.bug_scan_failed]
	other = "Error scanning PR for bugs: {{.Error}}"

	[error.improve_failed]
	other = "Error improving PR: {{.Error}}"

	[error.ask_failed]
	other = "Error answering question: {{.Error}}"

	[result.review_empty]
	other = "Review completed, but no results were returned."

	[result.describe_empty]
	other = "Description generated, but no results were returned."

	[result.bug_scan_empty]
	other = "Bug scan completed, but no results were returned."

	[result.improve_empty]
	other = "Improvements suggested, but no results were returned."

	[result.ask_empty]
	other = "Question answered, but no results were returned."

	[result.no_bugs_found]
	other = "No critical bugs or issues were identified in the scan."

	[check.ok]
	other = "Configuration looks good: provider={{.GitProvider}}, ai={{.AIProvider}}"
`
