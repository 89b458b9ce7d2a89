package platedb

import (
	"testing"
	"time"
)

func TestFavoriteKeysDeterministic(t *testing.T) {
	if a, b := FavoriteKeySpoonacular(654959), FavoriteKeySpoonacular(654959); a != b {
		t.Errorf("FavoriteKeySpoonacular not deterministic: %q != %q", a, b)
	}
	if got, want := FavoriteKeySpoonacular(654959), "spoonacular_654959"; got != want {
		t.Errorf("FavoriteKeySpoonacular(654959) = %q, want %q", got, want)
	}
	if got, want := FavoriteKeyPublished("abc123"), "published_abc123"; got != want {
		t.Errorf("FavoriteKeyPublished(abc123) = %q, want %q", got, want)
	}
	at := time.UnixMilli(1700000000000)
	if got, want := FavoriteKeyCustom(at), "custom_1700000000000"; got != want {
		t.Errorf("FavoriteKeyCustom = %q, want %q", got, want)
	}
}

func TestFavoriteKeysDisjointBySource(t *testing.T) {
	keys := []string{
		FavoriteKeySpoonacular(1),
		FavoriteKeyCustom(time.UnixMilli(1)),
		FavoriteKeyPublished("1"),
	}
	seen := map[string]bool{}
	for _, k := range keys {
		if seen[k] {
			t.Errorf("key %q collides across sources", k)
		}
		seen[k] = true
	}
}

func TestValidDifficulty(t *testing.T) {
	for _, d := range []Difficulty{DifficultyEasy, DifficultyMedium, DifficultyHard} {
		if !ValidDifficulty(d) {
			t.Errorf("ValidDifficulty(%q) = false, want true", d)
		}
	}
	if ValidDifficulty("impossible") {
		t.Error(`ValidDifficulty("impossible") = true, want false`)
	}
	if ValidDifficulty("") {
		t.Error(`ValidDifficulty("") = true, want false`)
	}
}

func TestValidReportReason(t *testing.T) {
	if !ValidReportReason(ReportReasonSpam) {
		t.Error("ValidReportReason(spam) = false, want true")
	}
	if ValidReportReason("grudge") {
		t.Error(`ValidReportReason("grudge") = true, want false`)
	}
}
