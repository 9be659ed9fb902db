package playlist

import (
	"reflect"
	"testing"
)

func TestPickSeededIsDeterministic(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h"}
	seed := int64(42)

	first := Pick(items, Options{Limit: 5, Shuffle: true, Seed: &seed})
	second := Pick(items, Options{Limit: 5, Shuffle: true, Seed: &seed})

	if !reflect.DeepEqual(first, second) {
		t.Errorf("same seed produced different orders: %v vs %v", first, second)
	}
	if len(first) != 5 {
		t.Errorf("expected 5 picked items, got %d", len(first))
	}
}

func TestPickDifferentSeedsDiffer(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j"}
	s1, s2 := int64(1), int64(2)

	first := Pick(items, Options{Limit: 10, Shuffle: true, Seed: &s1})
	second := Pick(items, Options{Limit: 10, Shuffle: true, Seed: &s2})

	if reflect.DeepEqual(first, second) {
		t.Error("different seeds produced identical orders; suspicious for 10 items")
	}
}

func TestPickNoShuffleKeepsOrder(t *testing.T) {
	items := []string{"a", "b", "c", "d"}

	picked := Pick(items, Options{Limit: 3, Shuffle: false})

	want := []string{"a", "b", "c"}
	if !reflect.DeepEqual(picked, want) {
		t.Errorf("expected %v, got %v", want, picked)
	}
}

func TestPickDoesNotModifyInput(t *testing.T) {
	items := []string{"a", "b", "c", "d", "e"}
	orig := make([]string, len(items))
	copy(orig, items)
	seed := int64(7)

	Pick(items, Options{Limit: 3, Shuffle: true, Seed: &seed})

	if !reflect.DeepEqual(items, orig) {
		t.Errorf("input slice was modified: %v", items)
	}
}

func TestPickFewerThanLimit(t *testing.T) {
	items := []string{"a", "b"}

	picked := Pick(items, Options{Limit: 60, Shuffle: false})

	if len(picked) != 2 {
		t.Errorf("expected all 2 items, got %d", len(picked))
	}
	if !Short(len(picked), 60) {
		t.Error("expected Short to report a shortfall")
	}
	if Short(60, 60) {
		t.Error("exact count should not be short")
	}
}
