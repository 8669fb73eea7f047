package ai

import (
	"strings"
	"testing"
)

func TestParseBagInfo_PlainJSON(t *testing.T) {
	info, err := parseBagInfo(`{"roaster":"La Cabra","name":"Aricha","origin":"Ethiopia","process":"natural","weight_g":250,"tasting_notes":["blueberry"," floral "]}`)
	if err != nil {
		t.Fatalf("parseBagInfo: %v", err)
	}
	if info.Roaster != "La Cabra" || info.Origin != "Ethiopia" || info.WeightG != 250 {
		t.Fatalf("unexpected info: %+v", info)
	}
	if len(info.TastingNotes) != 2 || info.TastingNotes[1] != "floral" {
		t.Fatalf("notes not normalised: %v", info.TastingNotes)
	}
}

func TestParseBagInfo_MarkdownFenced(t *testing.T) {
	content := "```json\n{\"roaster\": \"Tim Wendelboe\", \"roast_date\": \" 2025-04-12 \"}\n```"
	info, err := parseBagInfo(content)
	if err != nil {
		t.Fatalf("parseBagInfo: %v", err)
	}
	if info.Roaster != "Tim Wendelboe" || info.RoastDate != "2025-04-12" {
		t.Fatalf("unexpected info: %+v", info)
	}
}

func TestParseBagInfo_NotJSON(t *testing.T) {
	if _, err := parseBagInfo("I could not read the label."); err == nil || !strings.Contains(err.Error(), "parse bag metadata") {
		t.Fatalf("expected parse error, got %v", err)
	}
}

func TestNewClient_RequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}); err == nil {
		t.Fatalf("expected error for empty api key")
	}
}
