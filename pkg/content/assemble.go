package content

import (
	"github.com/wapptv/storefront/pkg/setting"
)

// applySettings folds the raw settings map into the document. The full map is
// exposed with parsed values; known keys additionally override their typed
// field. An absent or empty key leaves the default in place.
func (c *Content) applySettings(raw map[string]string) {
	c.Settings = make(map[string]any, len(raw))
	for k, v := range raw {
		c.Settings[k] = setting.ParseValue(v)
	}

	override := func(dst *string, key string) {
		if v, ok := raw[key]; ok && v != "" {
			*dst = v
		}
	}

	override(&c.SiteName, "site_name")
	override(&c.LogoURL, "logo_url")

	override(&c.SEO.Title, "seo_title")
	override(&c.SEO.Description, "seo_description")
	override(&c.SEO.Keywords, "seo_keywords")
	override(&c.SEO.OGImageURL, "seo_og_image_url")
	override(&c.SEO.FaviconURL, "seo_favicon_url")
	override(&c.SEO.TwitterHandle, "seo_twitter_handle")

	override(&c.Social.Instagram, "social_instagram")
	override(&c.Social.Telegram, "social_telegram")
	override(&c.Social.Facebook, "social_facebook")
	override(&c.Social.YouTube, "social_youtube")

	override(&c.Copy.Hero.Title, "hero_title")
	override(&c.Copy.Hero.Subtitle, "hero_subtitle")
	override(&c.Copy.Hero.Description, "hero_description")
	override(&c.Copy.Hero.CTAText, "hero_cta_text")
	override(&c.Copy.Hero.SecondaryCTAText, "hero_secondary_cta_text")
	override(&c.Copy.Hero.BadgeText, "hero_badge_text")
	override(&c.Copy.Hero.ImageURL, "hero_image_url")
	override(&c.Copy.Hero.StatsText, "hero_stats_text")

	override(&c.Copy.Trial.Title, "trial_title")
	override(&c.Copy.Trial.Subtitle, "trial_subtitle")
	override(&c.Copy.Trial.Description, "trial_description")
	override(&c.Copy.Trial.PCButtonText, "trial_pc_button_text")
	override(&c.Copy.Trial.MobileButtonText, "trial_mobile_button_text")
	override(&c.Copy.Trial.DurationText, "trial_duration_text")
	override(&c.Copy.Trial.Disclaimer, "trial_disclaimer")
	override(&c.Copy.Trial.ImageURL, "trial_image_url")

	override(&c.Copy.Krator.Title, "krator_title")
	override(&c.Copy.Krator.Subtitle, "krator_subtitle")
	override(&c.Copy.Krator.Description, "krator_description")
	override(&c.Copy.Krator.ButtonText, "krator_button_text")
	override(&c.Copy.Krator.FeatureOne, "krator_feature_one")
	override(&c.Copy.Krator.FeatureTwo, "krator_feature_two")
	override(&c.Copy.Krator.FeatureThree, "krator_feature_three")
	override(&c.Copy.Krator.ImageURL, "krator_image_url")

	override(&c.Copy.Reseller.Title, "reseller_title")
	override(&c.Copy.Reseller.Subtitle, "reseller_subtitle")
	override(&c.Copy.Reseller.Description, "reseller_description")
	override(&c.Copy.Reseller.ButtonText, "reseller_button_text")
	override(&c.Copy.Reseller.BenefitOne, "reseller_benefit_one")
	override(&c.Copy.Reseller.BenefitTwo, "reseller_benefit_two")
	override(&c.Copy.Reseller.BenefitThree, "reseller_benefit_three")
	override(&c.Copy.Reseller.BadgeText, "reseller_badge_text")

	override(&c.Copy.Footer.AboutText, "footer_about_text")
	override(&c.Copy.Footer.CopyrightText, "footer_copyright_text")
	override(&c.Copy.Footer.SupportText, "footer_support_text")
	override(&c.Copy.Footer.SupportHours, "footer_support_hours")
	override(&c.Copy.Footer.WarningText, "footer_warning_text")
	override(&c.Copy.Footer.CTAText, "footer_cta_text")
}
