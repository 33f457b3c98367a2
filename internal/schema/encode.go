package schema

import "encoding/json"

// EncodeJSON returns the canonical export form of s: two-space indented, categories in
// fixed order, empty categories as [].
func EncodeJSON(s AnalysisSet) ([]byte, error) {
	return json.MarshalIndent(s.Clone(), "", "  ")
}
