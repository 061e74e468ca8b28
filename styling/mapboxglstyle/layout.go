package mapboxglstyle

type Layout struct {
	Visibility string `json:"visibility,omitempty"`
	LineCap    string `json:"line-cap,omitempty"`
	LineJoin   string `json:"line-join,omitempty"`
}
