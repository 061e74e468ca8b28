package styling

// CustomBasicStyle is the style used when no other style is configured.
// Its defaults match the path defaults of Leaflet.
type CustomBasicStyle struct{}

func (_ *CustomBasicStyle) GetStyleID() string {
	return BUILTIN_STYLEID
}

func (_ *CustomBasicStyle) GetDefaults() StyleLayer {
	return StyleLayer{
		"weight":      5,
		"color":       "#03F",
		"opacity":     0.5,
		"fillOpacity": 0.2,
	}
}
