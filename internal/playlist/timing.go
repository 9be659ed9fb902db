package playlist

import "github.com/keagan/powerhour/internal/source"

// Entry is a fully resolved playlist item ready for artifact emission.
type Entry struct {
	VideoID string
	Title   string
	Start   float64
}

// ResolveStart computes the playback start offset for one item. A chorus
// timestamp wins and starts preChorus seconds early, an explicit start
// comes next, otherwise the default applies. Results never go negative.
func ResolveStart(item source.Item, preChorus, defaultStart float64) float64 {
	if item.Chorus != nil {
		return max(0, *item.Chorus-preChorus)
	}
	if item.Start != nil {
		return max(0, *item.Start)
	}
	return defaultStart
}

// Resolve maps picked items onto playlist entries with start offsets
// baked in. This happens once at assembly time; the artifact embeds the
// resolved values as constants.
func Resolve(items []source.Item, preChorus, defaultStart float64) []Entry {
	entries := make([]Entry, 0, len(items))
	for _, it := range items {
		if it.Ref == "" {
			continue
		}
		entries = append(entries, Entry{
			VideoID: it.Ref,
			Title:   it.Title,
			Start:   ResolveStart(it, preChorus, defaultStart),
		})
	}
	return entries
}
