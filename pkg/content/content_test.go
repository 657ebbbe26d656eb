package content

import (
	"reflect"
	"testing"

	"github.com/google/uuid"
)

func TestDefaultIsComplete(t *testing.T) {
	doc := Default()

	if doc.SiteName != "Wapp TV" {
		t.Errorf("SiteName = %q", doc.SiteName)
	}
	if doc.Plans == nil || doc.Contacts == nil || doc.ResellerContacts == nil ||
		doc.TutorialsApp == nil || doc.TutorialsTV == nil ||
		doc.Messages == nil || doc.ButtonTexts == nil || doc.Settings == nil {
		t.Error("default document must have empty collections, not nil")
	}
	if doc.Reseller == nil || doc.Reseller.ShowSection {
		t.Error("default reseller section must exist and be hidden")
	}

	// Every copy field ships a non-empty default except image slots.
	copyFields := []string{
		doc.Copy.Hero.Title, doc.Copy.Hero.Subtitle, doc.Copy.Hero.Description,
		doc.Copy.Hero.CTAText, doc.Copy.Hero.SecondaryCTAText, doc.Copy.Hero.BadgeText,
		doc.Copy.Hero.StatsText,
		doc.Copy.Trial.Title, doc.Copy.Trial.Subtitle, doc.Copy.Trial.Description,
		doc.Copy.Trial.PCButtonText, doc.Copy.Trial.MobileButtonText,
		doc.Copy.Trial.DurationText, doc.Copy.Trial.Disclaimer,
		doc.Copy.Krator.Title, doc.Copy.Krator.Subtitle, doc.Copy.Krator.Description,
		doc.Copy.Krator.ButtonText, doc.Copy.Krator.FeatureOne,
		doc.Copy.Krator.FeatureTwo, doc.Copy.Krator.FeatureThree,
		doc.Copy.Reseller.Title, doc.Copy.Reseller.Subtitle, doc.Copy.Reseller.Description,
		doc.Copy.Reseller.ButtonText, doc.Copy.Reseller.BenefitOne,
		doc.Copy.Reseller.BenefitTwo, doc.Copy.Reseller.BenefitThree,
		doc.Copy.Reseller.BadgeText,
		doc.Copy.Footer.AboutText, doc.Copy.Footer.CopyrightText,
		doc.Copy.Footer.SupportText, doc.Copy.Footer.SupportHours,
		doc.Copy.Footer.WarningText, doc.Copy.Footer.CTAText,
	}
	for i, f := range copyFields {
		if f == "" {
			t.Errorf("copy field %d has no default", i)
		}
	}
}

func TestApplySettings(t *testing.T) {
	doc := Default()
	defaultSubtitle := doc.Copy.Hero.Subtitle

	doc.applySettings(map[string]string{
		"site_name":     "Outra TV",
		"hero_title":    "Bem-vindo",
		"hero_subtitle": "",
		"seo_title":     "Outra TV - online",
		"show_popup":    "true",
		"prices":        `{"monthly":"29.90"}`,
		"broken_json":   `{"monthly":`,
	})

	if doc.SiteName != "Outra TV" {
		t.Errorf("SiteName = %q", doc.SiteName)
	}
	if doc.Copy.Hero.Title != "Bem-vindo" {
		t.Errorf("hero title = %q", doc.Copy.Hero.Title)
	}
	// An empty value does not clobber the default.
	if doc.Copy.Hero.Subtitle != defaultSubtitle {
		t.Errorf("hero subtitle = %q, want default %q", doc.Copy.Hero.Subtitle, defaultSubtitle)
	}
	if doc.SEO.Title != "Outra TV - online" {
		t.Errorf("seo title = %q", doc.SEO.Title)
	}

	if v, ok := doc.Settings["show_popup"].(bool); !ok || !v {
		t.Errorf("show_popup = %#v, want true", doc.Settings["show_popup"])
	}
	if m, ok := doc.Settings["prices"].(map[string]any); !ok || m["monthly"] != "29.90" {
		t.Errorf("prices = %#v", doc.Settings["prices"])
	}
	// Unparseable JSON comes through as the raw string, never an error.
	if doc.Settings["broken_json"] != `{"monthly":` {
		t.Errorf("broken_json = %#v, want raw string", doc.Settings["broken_json"])
	}
}

func TestCacheVersionGuard(t *testing.T) {
	cache := NewCache()
	id := uuid.New()

	v := cache.Version(id)
	if !cache.Put(id, Default(), v) {
		t.Fatal("first Put should succeed")
	}
	if _, ok := cache.Get(id); !ok {
		t.Fatal("document should be cached")
	}

	// A refresh computed before the invalidation must be discarded.
	stale := cache.Version(id)
	cache.Invalidate(id)
	if cache.Put(id, Default(), stale) {
		t.Error("stale Put should be rejected")
	}
	if _, ok := cache.Get(id); ok {
		t.Error("invalidated entry should not serve a document")
	}

	// A refresh computed after the invalidation lands.
	fresh := cache.Version(id)
	if !cache.Put(id, Default(), fresh) {
		t.Error("fresh Put should succeed")
	}
}

func TestCacheInvalidateAll(t *testing.T) {
	cache := NewCache()
	a, b := uuid.New(), uuid.New()

	cache.Put(a, Default(), cache.Version(a))
	cache.Put(b, Default(), cache.Version(b))

	cache.InvalidateAll()

	if _, ok := cache.Get(a); ok {
		t.Error("tenant A should be invalidated")
	}
	if _, ok := cache.Get(b); ok {
		t.Error("tenant B should be invalidated")
	}
}

func TestDefaultReturnsFreshCopies(t *testing.T) {
	a, b := Default(), Default()
	a.Settings["k"] = "v"
	a.Copy.Hero.Title = "changed"

	if _, ok := b.Settings["k"]; ok {
		t.Error("documents share the settings map")
	}
	if reflect.DeepEqual(a.Copy.Hero, b.Copy.Hero) {
		t.Error("mutating one document changed the other")
	}
}
