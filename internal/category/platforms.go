package category

type Platform struct {
	Key    string `json:"key"`
	Name   string `json:"name"`
	Region string `json:"region"`
}

type Region struct {
	Code            string   `json:"code"`
	Name            string   `json:"name"`
	NameKR          string   `json:"name_kr"`
	DefaultPlatform string   `json:"default_platform"`
	ExtraPlatforms  []string `json:"extra_platforms"`
}

var platforms = map[string]Platform{
	"oliveyoung":    {Key: "oliveyoung", Name: "OliveYoung", Region: "KR"},
	"amazon_us":     {Key: "amazon_us", Name: "Amazon US", Region: "US"},
	"amazon_ae":     {Key: "amazon_ae", Name: "Amazon AE", Region: "AE"},
	"amazon_sa":     {Key: "amazon_sa", Name: "Amazon SA", Region: "SA"},
	"noon_ae":       {Key: "noon_ae", Name: "Noon", Region: "AE"},
	"ulta":          {Key: "ulta", Name: "Ulta", Region: "US"},
	"tiktokshop_us": {Key: "tiktokshop_us", Name: "TikTok Shop", Region: "US"},
	"lifepharmacy":  {Key: "lifepharmacy", Name: "LifePharmacy", Region: "AE"},
	"watsons_ae":    {Key: "watsons_ae", Name: "Watsons AE", Region: "AE"},
}

// RegionCodes are the regions shown on the dashboard, in column order.
var RegionCodes = []string{"KR", "US", "AE"}

var regions = map[string]Region{
	"KR": {Code: "KR", Name: "Korea", NameKR: "한국", DefaultPlatform: "oliveyoung", ExtraPlatforms: []string{}},
	"US": {Code: "US", Name: "United States", NameKR: "미국", DefaultPlatform: "amazon_us", ExtraPlatforms: []string{"ulta", "tiktokshop_us"}},
	"AE": {Code: "AE", Name: "UAE", NameKR: "UAE", DefaultPlatform: "amazon_ae", ExtraPlatforms: []string{"noon_ae", "watsons_ae", "lifepharmacy"}},
}

func LookupPlatform(key string) (Platform, bool) {
	p, ok := platforms[key]
	return p, ok
}

func LookupRegion(code string) (Region, bool) {
	r, ok := regions[code]
	return r, ok
}

// RegionPlatforms returns the default platform followed by the extras.
func RegionPlatforms(code string) []string {
	r, ok := regions[code]
	if !ok {
		return nil
	}
	out := make([]string, 0, 1+len(r.ExtraPlatforms))
	out = append(out, r.DefaultPlatform)
	return append(out, r.ExtraPlatforms...)
}
