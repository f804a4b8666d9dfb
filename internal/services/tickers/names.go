package tickers

// nameMapping pairs a lowercase company name fragment with its symbol.
// Ordered so that lookups are deterministic; first match per name wins.
type nameMapping struct {
	Name   string
	Symbol string
}

// KnownNames is the static company-name lookup table. It is a fixed,
// hand-maintained mapping, extensible by appending but not dynamic.
var KnownNames = []nameMapping{
	{"nvidia", "NVDA"}, {"amd", "AMD"}, {"advanced micro devices", "AMD"},
	{"oracle", "ORCL"}, {"broadcom", "AVGO"}, {"palantir", "PLTR"}, {"cloudflare", "NET"},
	{"amazon", "AMZN"}, {"alphabet", "GOOGL"}, {"google", "GOOGL"}, {"microsoft", "MSFT"},
	{"kla corporation", "KLAC"}, {"kla", "KLAC"}, {"ibm", "IBM"}, {"apple", "AAPL"},
	{"tqqq", "TQQQ"}, {"intel", "INTC"}, {"bulz", "BULZ"}, {"costco", "COST"}, {"cost", "COST"},
	{"tesla", "TSLA"}, {"meta", "META"}, {"facebook", "META"}, {"servicenow", "NOW"},
	{"netflix", "NFLX"}, {"hims", "HIMS"}, {"natera", "NTRA"}, {"datadog", "DDOG"},
	{"taiwan semiconductor", "TSM"}, {"tsmc", "TSM"}, {"micron", "MU"}, {"salesforce", "CRM"},
	{"teradyne", "TEM"}, {"rocket lab", "RKLB"}, {"crowdstrike", "CRWD"}, {"uvxy", "UVXY"},
	{"unitedhealth", "UNH"}, {"jpmorgan", "JPM"}, {"abbott", "ABT"}, {"beyond meat", "BYND"},
	{"ferrari", "RACE"}, {"sofi", "SOFI"}, {"dell", "DELL"}, {"upstart", "UPST"},
	{"gold", "GLD"}, {"gldm", "GLDM"}, {"shiny", "SHNY"}, {"msci", "MSCI"},
	{"cameco", "CCJ"}, {"shopify", "SHOP"}, {"ionq", "IONQ"},
	{"quantum computing", "QBTS"}, {"qtum", "QTUM"}, {"qubt", "QUBT"},
	{"arqit", "ARQQ"}, {"holoride", "HOLO"},
}

// Blacklist holds tokens that satisfy the symbol shape but are common
// English words or source-name artifacts, never real candidates. Small
// and explicit on purpose.
var Blacklist = map[string]struct{}{
	"IN": {}, "WITH": {}, "AND": {}, "THE": {}, "FOR": {}, "FROM": {},
	"OVER": {}, "AFTER": {}, "BEFORE": {}, "FIRST": {}, "SECOND": {}, "THIRD": {},
	"NEWS": {}, "CNBC": {}, "CNN": {}, "TECH": {}, "STOCK": {}, "MARKET": {},
	"EARNINGS": {}, "RESULTS": {}, "SHARES": {}, "OFF": {}, "S": {}, "INTEL": {},
}
