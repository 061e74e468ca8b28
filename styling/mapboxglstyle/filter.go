package mapboxglstyle

const (
	FilterOperatorEquals   = "=="
	FilterOperatorNotEqual = "!="
	FilterOperatorAny      = "any"
	FilterOperatorAll      = "all"
	FilterOperatorIn       = "in"
	FilterOperatorNotIn    = "!in"
	FilterOperatorHas      = "has"
)

const (
	FilterThingType           = "$type"
	FilterThingTypePoint      = "Point"
	FilterThingTypeLineString = "LineString"
	FilterThingTypePolygon    = "Polygon"
)

/*
	"filter": ["all",["==","$type","Polygon"],["has","population"]]
*/
type Filter []interface{}

// FilterGeometryType shows only features of a geometry type (FilterThingTypePoint, ...)
func FilterGeometryType(geometryType string) Filter {
	return Filter{FilterOperatorEquals, FilterThingType, geometryType}
}

func FilterHas(field string) Filter {
	return Filter{FilterOperatorHas, field}
}

// FilterAll combines filters; nil filters are left out
func FilterAll(filters ...Filter) Filter {
	all := Filter{FilterOperatorAll}
	for _, filter := range filters {
		if filter == nil {
			continue
		}
		all = append(all, filter)
	}
	return all
}
