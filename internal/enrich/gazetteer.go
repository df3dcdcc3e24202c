package enrich

import (
	"strings"
)

// Location is a structured city/state pair; City is empty for bare
// state-code matches.
type Location struct {
	City  string
	State string
}

// LocationFinder matches trailing "CITY STATE" or bare state-code suffixes
// against a gazetteer, extracts the location, and trims the matched suffix.
type LocationFinder struct {
	gazetteer map[string]Location
}

// NewLocationFinder creates a finder backed by the built-in gazetteer
func NewLocationFinder() *LocationFinder {
	return &LocationFinder{
		gazetteer: defaultGazetteer(),
	}
}

// Extract scans suffixes of desc from the shortest to the longest; each
// gazetteer hit overwrites the previous one, so the longest suffix that is a
// key wins. The matched key (city, separating space, and state code) is
// trimmed off the end. No match returns the input unchanged with empty
// city/state.
func (lf *LocationFinder) Extract(desc string) (city, state, trimmedDesc string) {
	var best *Location
	bestKeyLen := 0
	for start := len(desc) - 1; start >= 0; start-- {
		if loc, ok := lf.gazetteer[desc[start:]]; ok {
			best = &loc
			bestKeyLen = len(desc) - start
		}
	}

	if best == nil {
		return "", "", desc
	}

	trimmed := strings.TrimSpace(desc[:len(desc)-bestKeyLen])
	return best.City, best.State, trimmed
}

// defaultGazetteer maps "CITY STATE" keys and bare two-letter state codes to
// structured locations. Coverage is the largest US cities plus a handful of
// smaller ones that show up in card descriptions.
func defaultGazetteer() map[string]Location {
	cities := map[string]Location{
		"NEW YORK NY":         {"NEW YORK", "NY"},
		"LOS ANGELES CA":      {"LOS ANGELES", "CA"},
		"CHICAGO IL":          {"CHICAGO", "IL"},
		"HOUSTON TX":          {"HOUSTON", "TX"},
		"PHOENIX AZ":          {"PHOENIX", "AZ"},
		"PHILADELPHIA PA":     {"PHILADELPHIA", "PA"},
		"SAN ANTONIO TX":      {"SAN ANTONIO", "TX"},
		"SAN DIEGO CA":        {"SAN DIEGO", "CA"},
		"DALLAS TX":           {"DALLAS", "TX"},
		"SAN JOSE CA":         {"SAN JOSE", "CA"},
		"AUSTIN TX":           {"AUSTIN", "TX"},
		"JACKSONVILLE FL":     {"JACKSONVILLE", "FL"},
		"FORT WORTH TX":       {"FORT WORTH", "TX"},
		"COLUMBUS OH":         {"COLUMBUS", "OH"},
		"SAN FRANCISCO CA":    {"SAN FRANCISCO", "CA"},
		"CHARLOTTE NC":        {"CHARLOTTE", "NC"},
		"INDIANAPOLIS IN":     {"INDIANAPOLIS", "IN"},
		"SEATTLE WA":          {"SEATTLE", "WA"},
		"DENVER CO":           {"DENVER", "CO"},
		"WASHINGTON DC":       {"WASHINGTON", "DC"},
		"BOSTON MA":           {"BOSTON", "MA"},
		"EL PASO TX":          {"EL PASO", "TX"},
		"DETROIT MI":          {"DETROIT", "MI"},
		"NASHVILLE TN":        {"NASHVILLE", "TN"},
		"PORTLAND OR":         {"PORTLAND", "OR"},
		"MEMPHIS TN":          {"MEMPHIS", "TN"},
		"OKLAHOMA CITY OK":    {"OKLAHOMA CITY", "OK"},
		"LAS VEGAS NV":        {"LAS VEGAS", "NV"},
		"LOUISVILLE KY":       {"LOUISVILLE", "KY"},
		"BALTIMORE MD":        {"BALTIMORE", "MD"},
		"MILWAUKEE WI":        {"MILWAUKEE", "WI"},
		"ALBUQUERQUE NM":      {"ALBUQUERQUE", "NM"},
		"TUCSON AZ":           {"TUCSON", "AZ"},
		"FRESNO CA":           {"FRESNO", "CA"},
		"SACRAMENTO CA":       {"SACRAMENTO", "CA"},
		"MESA AZ":             {"MESA", "AZ"},
		"KANSAS CITY MO":      {"KANSAS CITY", "MO"},
		"ATLANTA GA":          {"ATLANTA", "GA"},
		"OMAHA NE":            {"OMAHA", "NE"},
		"COLORADO SPRINGS CO": {"COLORADO SPRINGS", "CO"},
		"RALEIGH NC":          {"RALEIGH", "NC"},
		"VIRGINIA BEACH VA":   {"VIRGINIA BEACH", "VA"},
		"LONG BEACH CA":       {"LONG BEACH", "CA"},
		"MIAMI FL":            {"MIAMI", "FL"},
		"OAKLAND CA":          {"OAKLAND", "CA"},
		"MINNEAPOLIS MN":      {"MINNEAPOLIS", "MN"},
		"TULSA OK":            {"TULSA", "OK"},
		"ARLINGTON TX":        {"ARLINGTON", "TX"},
		"TAMPA FL":            {"TAMPA", "FL"},
		"NEW ORLEANS LA":      {"NEW ORLEANS", "LA"},
		"WICHITA KS":          {"WICHITA", "KS"},
		"CLEVELAND OH":        {"CLEVELAND", "OH"},
		"BAKERSFIELD CA":      {"BAKERSFIELD", "CA"},
		"AURORA CO":           {"AURORA", "CO"},
		"ANAHEIM CA":          {"ANAHEIM", "CA"},
		"HONOLULU HI":         {"HONOLULU", "HI"},
		"SANTA ANA CA":        {"SANTA ANA", "CA"},
		"RIVERSIDE CA":        {"RIVERSIDE", "CA"},
		"CORPUS CHRISTI TX":   {"CORPUS CHRISTI", "TX"},
		"LEXINGTON KY":        {"LEXINGTON", "KY"},
		"STOCKTON CA":         {"STOCKTON", "CA"},
		"HENDERSON NV":        {"HENDERSON", "NV"},
		"SAINT PAUL MN":       {"SAINT PAUL", "MN"},
		"CINCINNATI OH":       {"CINCINNATI", "OH"},
		"ST LOUIS MO":         {"ST LOUIS", "MO"},
		"PITTSBURGH PA":       {"PITTSBURGH", "PA"},
		"GREENSBORO NC":       {"GREENSBORO", "NC"},
		"LINCOLN NE":          {"LINCOLN", "NE"},
		"ANCHORAGE AK":        {"ANCHORAGE", "AK"},
		"PLANO TX":            {"PLANO", "TX"},
		"ORLANDO FL":          {"ORLANDO", "FL"},
		"IRVINE CA":           {"IRVINE", "CA"},
		"NEWARK NJ":           {"NEWARK", "NJ"},
		"DURHAM NC":           {"DURHAM", "NC"},
		"CHULA VISTA CA":      {"CHULA VISTA", "CA"},
		"TOLEDO OH":           {"TOLEDO", "OH"},
		"FORT WAYNE IN":       {"FORT WAYNE", "IN"},
		"ST PETERSBURG FL":    {"ST PETERSBURG", "FL"},
		"LAREDO TX":           {"LAREDO", "TX"},
		"JERSEY CITY NJ":      {"JERSEY CITY", "NJ"},
		"CHANDLER AZ":         {"CHANDLER", "AZ"},
		"MADISON WI":          {"MADISON", "WI"},
		"BUFFALO NY":          {"BUFFALO", "NY"},
		"LUBBOCK TX":          {"LUBBOCK", "TX"},
		"SCOTTSDALE AZ":       {"SCOTTSDALE", "AZ"},
		"RENO NV":             {"RENO", "NV"},
		"GLENDALE AZ":         {"GLENDALE", "AZ"},
		"GILBERT AZ":          {"GILBERT", "AZ"},
		"WINSTON SALEM NC":    {"WINSTON SALEM", "NC"},
		"NORTH LAS VEGAS NV":  {"NORTH LAS VEGAS", "NV"},
		"NORFOLK VA":          {"NORFOLK", "VA"},
		"CHESAPEAKE VA":       {"CHESAPEAKE", "VA"},
		"GARLAND TX":          {"GARLAND", "TX"},
		"IRVING TX":           {"IRVING", "TX"},
		"HIALEAH FL":          {"HIALEAH", "FL"},
		"FREMONT CA":          {"FREMONT", "CA"},
		"BOISE ID":            {"BOISE", "ID"},
		"RICHMOND VA":         {"RICHMOND", "VA"},
		"BATON ROUGE LA":      {"BATON ROUGE", "LA"},
		"SPOKANE WA":          {"SPOKANE", "WA"},
		"DES MOINES IA":       {"DES MOINES", "IA"},
		"TACOMA WA":           {"TACOMA", "WA"},
		"SAN BERNARDINO CA":   {"SAN BERNARDINO", "CA"},
		"MODESTO CA":          {"MODESTO", "CA"},
		"CAMBRIDGE MA":        {"CAMBRIDGE", "MA"},
		"PALO ALTO CA":        {"PALO ALTO", "CA"},
		"BETHESDA MD":         {"BETHESDA", "MD"},
		"ANN ARBOR MI":        {"ANN ARBOR", "MI"},
		"PRINCETON NJ":        {"PRINCETON", "NJ"},
		"WHITE PLAINS NY":     {"WHITE PLAINS", "NY"},
		"BELLEVUE WA":         {"BELLEVUE", "WA"},
		"STAMFORD CT":         {"STAMFORD", "CT"},
		"TYSONS VA":           {"TYSONS", "VA"},
		"BROOKLINE MA":        {"BROOKLINE", "MA"},
		"FORT LAUDERDALE FL":  {"FORT LAUDERDALE", "FL"},
		"GREENWICH CT":        {"GREENWICH", "CT"},
		"ALEXANDRIA VA":       {"ALEXANDRIA", "VA"},
		"BOULDER CO":          {"BOULDER", "CO"},
		"SANTA MONICA CA":     {"SANTA MONICA", "CA"},
		"MOUNTAIN VIEW CA":    {"MOUNTAIN VIEW", "CA"},
		"SUNNYVALE CA":        {"SUNNYVALE", "CA"},
		"PASADENA CA":         {"PASADENA", "CA"},
		"ALLEGHENY PA":        {"ALLEGHENY", "PA"},
		"BROOKLYN NY":         {"BROOKLYN", "NY"},
		"CAMDEN NJ":           {"CAMDEN", "NJ"},
		"CANTON OH":           {"CANTON", "OH"},
		"CITRUS HEIGHTS CA":   {"CITRUS HEIGHTS", "CA"},
		"DALY CITY CA":        {"DALY CITY", "CA"},
		"DULUTH MN":           {"DULUTH", "MN"},
		"ERIE PA":             {"ERIE", "PA"},
		"FALL RIVER MA":       {"FALL RIVER", "MA"},
		"FEDERAL WAY WA":      {"FEDERAL WAY", "WA"},
		"FLINT MI":            {"FLINT", "MI"},
		"GARY IN":             {"GARY", "IN"},
		"HAMMOND IN":          {"HAMMOND", "IN"},
		"LIVONIA MI":          {"LIVONIA", "MI"},
		"NIAGARA FALLS NY":    {"NIAGARA FALLS", "NY"},
		"NORWALK CA":          {"NORWALK", "CA"},
		"PARMA OH":            {"PARMA", "OH"},
		"PORTSMOUTH VA":       {"PORTSMOUTH", "VA"},
		"READING PA":          {"READING", "PA"},
		"ROANOKE VA":          {"ROANOKE", "VA"},
		"SCRANTON PA":         {"SCRANTON", "PA"},
		"SOMERVILLE MA":       {"SOMERVILLE", "MA"},
		"ST JOSEPH MO":        {"ST JOSEPH", "MO"},
		"TRENTON NJ":          {"TRENTON", "NJ"},
		"UTICA NY":            {"UTICA", "NY"},
		"WILMINGTON DE":       {"WILMINGTON", "DE"},
		"YOUNGSTOWN OH":       {"YOUNGSTOWN", "OH"},
		"STOW MA":             {"STOW", "MA"},
		"MAYNARD MA":          {"MAYNARD", "MA"},
	}

	stateCodes := []string{
		"AL", "AK", "AZ", "AR", "CA", "CO", "CT", "DE", "FL", "GA",
		"HI", "ID", "IL", "IN", "IA", "KS", "KY", "LA", "ME", "MD",
		"MA", "MI", "MN", "MS", "MO", "MT", "NE", "NV", "NH", "NJ",
		"NM", "NY", "NC", "ND", "OH", "OK", "OR", "PA", "RI", "SC",
		"SD", "TN", "TX", "UT", "VT", "VA", "WA", "WV", "WI", "WY",
		"DC", "AS", "GU", "MP", "PR",
	}
	for _, code := range stateCodes {
		cities[code] = Location{State: code}
	}

	// Virgin Islands codes share one canonical state value
	cities["VI"] = Location{State: "USVI"}
	cities["USVI"] = Location{State: "USVI"}
	cities["BVI"] = Location{State: "BVI"}

	return cities
}
