// Package content assembles the public content document a tenant's site is
// rendered from. Seven tables are fetched in parallel and folded into one
// nested object; every copy field falls back to a hard-coded default when its
// settings key is absent or empty, so an empty tenant still renders a
// complete site.
package content

import (
	"github.com/wapptv/storefront/pkg/plan"
	"github.com/wapptv/storefront/pkg/reseller"
	"github.com/wapptv/storefront/pkg/theme"
	"github.com/wapptv/storefront/pkg/tutorial"
)

// SEO holds the page metadata fields the client writes into the document
// head.
type SEO struct {
	Title         string `json:"title"`
	Description   string `json:"description"`
	Keywords      string `json:"keywords"`
	OGImageURL    string `json:"og_image_url"`
	FaviconURL    string `json:"favicon_url"`
	TwitterHandle string `json:"twitter_handle"`
}

// Social holds the outbound profile links shown in the footer.
type Social struct {
	Instagram string `json:"instagram"`
	Telegram  string `json:"telegram"`
	Facebook  string `json:"facebook"`
	YouTube   string `json:"youtube"`
}

// HeroCopy is the text of the opening section.
type HeroCopy struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	Description      string `json:"description"`
	CTAText          string `json:"cta_text"`
	SecondaryCTAText string `json:"secondary_cta_text"`
	BadgeText        string `json:"badge_text"`
	ImageURL         string `json:"image_url"`
	StatsText        string `json:"stats_text"`
}

// TrialCopy is the text of the free-trial section.
type TrialCopy struct {
	Title            string `json:"title"`
	Subtitle         string `json:"subtitle"`
	Description      string `json:"description"`
	PCButtonText     string `json:"pc_button_text"`
	MobileButtonText string `json:"mobile_button_text"`
	DurationText     string `json:"duration_text"`
	Disclaimer       string `json:"disclaimer"`
	ImageURL         string `json:"image_url"`
}

// KratorCopy is the text of the Krator player section.
type KratorCopy struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	ButtonText   string `json:"button_text"`
	FeatureOne   string `json:"feature_one"`
	FeatureTwo   string `json:"feature_two"`
	FeatureThree string `json:"feature_three"`
	ImageURL     string `json:"image_url"`
}

// ResellerCopy is the text of the reseller call-to-action section.
type ResellerCopy struct {
	Title        string `json:"title"`
	Subtitle     string `json:"subtitle"`
	Description  string `json:"description"`
	ButtonText   string `json:"button_text"`
	BenefitOne   string `json:"benefit_one"`
	BenefitTwo   string `json:"benefit_two"`
	BenefitThree string `json:"benefit_three"`
	BadgeText    string `json:"badge_text"`
}

// FooterCopy is the text of the page footer.
type FooterCopy struct {
	AboutText     string `json:"about_text"`
	CopyrightText string `json:"copyright_text"`
	SupportText   string `json:"support_text"`
	SupportHours  string `json:"support_hours"`
	WarningText   string `json:"warning_text"`
	CTAText       string `json:"cta_text"`
}

// Copy bundles the per-section text blocks.
type Copy struct {
	Hero     HeroCopy     `json:"hero"`
	Trial    TrialCopy    `json:"trial"`
	Krator   KratorCopy   `json:"krator"`
	Reseller ResellerCopy `json:"reseller"`
	Footer   FooterCopy   `json:"footer"`
}

// Content is the complete public document for one tenant.
type Content struct {
	SiteName         string             `json:"site_name"`
	LogoURL          string             `json:"logo_url"`
	SEO              SEO                `json:"seo"`
	Social           Social             `json:"social"`
	Copy             Copy               `json:"copy"`
	Plans            []plan.Plan        `json:"plans"`
	TutorialsApp     []tutorial.Step    `json:"tutorials_app"`
	TutorialsTV      []tutorial.Step    `json:"tutorials_tv"`
	Contacts         []string           `json:"contacts"`
	ResellerContacts []string           `json:"reseller_contacts"`
	Messages         map[string]string  `json:"messages"`
	ButtonTexts      map[string]string  `json:"button_texts"`
	Settings         map[string]any     `json:"settings"`
	Reseller         *reseller.Settings `json:"reseller"`
	Theme            *theme.Theme       `json:"theme,omitempty"`
}

// Default returns the complete hard-coded document. A tenant with no stored
// rows serves exactly this.
func Default() *Content {
	return &Content{
		SiteName: "Wapp TV",
		LogoURL:  "",
		SEO: SEO{
			Title:       "Wapp TV - A melhor TV online do Brasil",
			Description: "Milhares de canais, filmes e séries em todos os seus dispositivos. Teste grátis agora.",
			Keywords:    "tv online, iptv, canais, filmes, séries",
		},
		Social: Social{},
		Copy: Copy{
			Hero: HeroCopy{
				Title:            "A melhor TV online do Brasil",
				Subtitle:         "Canais, filmes e séries em um só lugar",
				Description:      "Assista onde e quando quiser, em qualquer dispositivo, com qualidade de cinema.",
				CTAText:          "Assinar agora",
				SecondaryCTAText: "Fazer teste grátis",
				BadgeText:        "Mais de 10.000 clientes satisfeitos",
				ImageURL:         "",
				StatsText:        "+50.000 conteúdos disponíveis",
			},
			Trial: TrialCopy{
				Title:            "Teste grátis",
				Subtitle:         "Experimente antes de assinar",
				Description:      "Libere seu acesso de teste em segundos e conheça tudo o que oferecemos.",
				PCButtonText:     "Testar no computador",
				MobileButtonText: "Testar no celular",
				DurationText:     "4 horas de acesso completo",
				Disclaimer:       "Sem compromisso. Nenhum cartão necessário.",
				ImageURL:         "",
			},
			Krator: KratorCopy{
				Title:        "Conheça o Krator",
				Subtitle:     "O aplicativo feito para a sua TV",
				Description:  "Instale o Krator e tenha a melhor experiência em Smart TVs e TV Box.",
				ButtonText:   "Quero o Krator",
				FeatureOne:   "Interface rápida e intuitiva",
				FeatureTwo:   "Atualizações automáticas",
				FeatureThree: "Suporte a todos os formatos",
				ImageURL:     "",
			},
			Reseller: ResellerCopy{
				Title:        "Seja um revendedor",
				Subtitle:     "Monte seu próprio negócio",
				Description:  "Compre créditos, defina seus preços e atenda seus clientes com a nossa estrutura.",
				ButtonText:   "Quero revender",
				BenefitOne:   "Painel de gestão completo",
				BenefitTwo:   "Suporte dedicado",
				BenefitThree: "Ativação imediata",
				BadgeText:    "Margens de até 300%",
			},
			Footer: FooterCopy{
				AboutText:     "Wapp TV é a sua central de entretenimento online.",
				CopyrightText: "© Wapp TV. Todos os direitos reservados.",
				SupportText:   "Atendimento via WhatsApp",
				SupportHours:  "Todos os dias, das 8h às 23h",
				WarningText:   "Este site não hospeda nenhum conteúdo.",
				CTAText:       "Fale conosco",
			},
		},
		Plans:            []plan.Plan{},
		TutorialsApp:     []tutorial.Step{},
		TutorialsTV:      []tutorial.Step{},
		Contacts:         []string{},
		ResellerContacts: []string{},
		Messages:         map[string]string{},
		ButtonTexts:      map[string]string{},
		Settings:         map[string]any{},
		Reseller:         reseller.DefaultSettings(),
	}
}
