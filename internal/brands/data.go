package brands

// Reference tables as of the 2024 annual-report cycle (DART 사업보고서).
// Keys are lowercase. Adding a brand here is a data change, not a code change.

const DataAsOf = "2024-12-31"

var kbeautyBrands = toSet(kbeautyBrandList)

func toSet(keys []string) map[string]struct{} {
	out := make(map[string]struct{}, len(keys))
	for _, k := range keys {
		out[k] = struct{}{}
	}
	return out
}

var kbeautyBrandList = []string{
	// Amorepacific Group
	"sulwhasoo", "laneige", "innisfree", "etude", "mamonde", "iope",
	"hera", "primera", "illiyoon", "aestura", "amorepacific",
	// LG H&H Group
	"the face shop", "belif", "cnp", "su:m37", "o hui",
	"the history of whoo",
	// indie / DTC
	"cosrx", "anua", "torriden", "beauty of joseon", "isntree",
	"medicube", "numbuzin", "skin1004", "round lab", "missha",
	"some by mi", "klairs", "purito", "heimish", "goodal",
	"neogen", "benton", "mizon", "acwell", "manyo", "ma:nyo",
	"haruharu wonder", "thank you farmer",
	// Clio group
	"clio", "peripera",
	"biodance", "tirtir", "d'alba", "dalba", "celimax", "abib",
	"vt", "vt cosmetics", "3ce", "vdl", "rom&nd", "romand",
	"aprilskin", "ariul", "mixsoon", "dr.althea", "dr althea",
	"elizavecca", "dr.melaxin", "mediheal", "dr.jart", "dr jart",
	"holika holika", "skinfood", "too cool for school", "tonymoly",
	"banila co", "laka", "wakemake", "espoir", "age 20's", "age20s",
	"dear klairs", "by wishtrend", "wishtrend", "beplain",
	"seoulceuticals", "the saem", "saem",
	"dermaction", "dermaction plus",
	"nature republic", "a'pieu", "apieu", "its skin", "it's skin",
	"erborian", "papa recipe", "pyunkang yul", "snp",
	"dewytree", "holika", "hanyul", "eqqualberry",
	"seranova", "sacheu", "goddvenus",
	// OliveYoung locals
	"milktouch", "dasique", "jung saem mool", "jungsaemmool",
	"olive young", "bring green", "roundaround", "round a round",
	"about me", "lagom", "lador", "la'dor", "sidmool",
	"cosmedics", "cell fusion c", "cnp laboratory",
	"dr.g", "dr g", "the plant base", "jayjun", "j.one", "jone",
	"miguhara", "medi-peel", "medipeel", "real barrier",
	"scinic", "tocobo", "esfolio", "so natural",
	"mary&may", "mary and may", "axis-y", "axisy",
	"skin&lab", "skinlab", "iunik", "rovectin",
	"nacific", "a.h.c", "ahc",
	"wellage", "farmstay", "brtc", "enough",
	"tony moly", "aritaum",
}

const (
	amorepacific = "아모레퍼시픽"
	lgHH         = "LG생활건강"
	clio         = "클리오"
	apr          = "에이피알"
	goodai       = "굿다이글로벌"
	ableCNC      = "에이블씨엔씨"
	oliveYoung   = "CJ올리브영"
	wishcompany  = "위시컴퍼니"
)

// brandToCompany maps a lowercase brand key to its parent company's Korean
// legal name. Transliteration variants map to the same company.
var brandToCompany = map[string]string{
	"sulwhasoo": amorepacific, "laneige": amorepacific, "innisfree": amorepacific,
	"etude": amorepacific, "mamonde": amorepacific, "iope": amorepacific,
	"hera": amorepacific, "primera": amorepacific, "illiyoon": amorepacific,
	"aestura": amorepacific, "amorepacific": amorepacific,
	"espoir": amorepacific, "hanyul": amorepacific, "aritaum": amorepacific,

	"the face shop": lgHH, "belif": lgHH, "cnp": lgHH,
	"cnp laboratory": lgHH, "su:m37": lgHH,
	"o hui": lgHH, "the history of whoo": lgHH, "vdl": lgHH,

	"clio": clio, "peripera": clio, "goodal": clio,

	"medicube": apr, "aprilskin": apr,

	"beauty of joseon": goodai, "tirtir": goodai,
	"skin1004": goodai, "laka": goodai, "iunik": goodai,

	"missha": ableCNC, "a'pieu": ableCNC, "apieu": ableCNC,

	"olive young": oliveYoung, "bring green": oliveYoung,
	"wakemake": oliveYoung, "roundaround": oliveYoung, "round a round": oliveYoung,

	"numbuzin": "비나우",

	"klairs": wishcompany, "dear klairs": wishcompany,
	"by wishtrend": wishcompany, "wishtrend": wishcompany,

	"rom&nd": "아이패밀리에스씨", "romand": "아이패밀리에스씨",
	"3ce":     "난다",
	"dr.jart": "해브앤비", "dr jart": "해브앤비",
	"a.h.c": "카버코리아", "ahc": "카버코리아",

	"cosrx":               "코스알엑스",
	"anua":                "더파운더즈",
	"torriden":            "토리든",
	"isntree":             "이즈앤트리",
	"round lab":           "서린컴퍼니",
	"some by mi":          "페렌벨",
	"neogen":              "아우딘퓨쳐스",
	"benton":              "벤튼",
	"mizon":               "PFD",
	"acwell":              "비앤에이치코스메틱",
	"manyo":               "마녀공장",
	"ma:nyo":              "마녀공장",
	"purito":              "하이네이처",
	"heimish":             "원앤드",
	"haruharu wonder":     "DFS컴퍼니",
	"thank you farmer":    "땡큐파머",
	"biodance":            "뷰티셀렉션",
	"d'alba":              "달바글로벌",
	"dalba":               "달바글로벌",
	"celimax":             "앱솔브랩",
	"abib":                "포컴퍼니",
	"vt":                  "브이티",
	"vt cosmetics":        "브이티",
	"mixsoon":             "파켓",
	"dr.althea":           "닥터알떼아",
	"dr althea":           "닥터알떼아",
	"elizavecca":          "미즈트레이드",
	"mediheal":            "엘앤피코스메틱",
	"holika holika":       "엔코스",
	"holika":              "엔코스",
	"skinfood":            "아이피어스",
	"too cool for school": "투쿨포스쿨",
	"tonymoly":            "토니모리",
	"tony moly":           "토니모리",
	"banila co":           "에프앤코",
	"age 20's":            "애경산업",
	"age20s":              "애경산업",
	"the saem":            "더샘",
	"saem":                "더샘",
	"nature republic":     "네이처리퍼블릭",
	"it's skin":           "잇츠한불",
	"its skin":            "잇츠한불",
	"papa recipe":         "코스토리",
	"pyunkang yul":        "편강율",
	"snp":                 "에스디생명공학",
	"dewytree":            "듀이트리",
	"dasique":             "바이에콤",
	"milktouch":           "올리브인터내셔널",
	"jung saem mool":      "정샘물뷰티",
	"jungsaemmool":        "정샘물뷰티",
	"lagom":               "스킨메드인터내셔널",
	"lador":               "제이피프로페셔널",
	"la'dor":              "제이피프로페셔널",
	"sidmool":             "시드물",
	"cell fusion c":       "CMS랩",
	"dr.g":                "고운세상코스메틱스",
	"dr g":                "고운세상코스메틱스",
	"the plant base":      "플랜트베이스",
	"jayjun":              "제이준코스메틱",
	"j.one":               "제이원코스메틱",
	"jone":                "제이원코스메틱",
	"miguhara":            "겟뷰티",
	"medi-peel":           "스킨아이디어",
	"medipeel":            "스킨아이디어",
	"real barrier":        "네오팜",
	"scinic":              "싸이닉",
	"tocobo":              "픽톤",
	"esfolio":             "에스폴리오",
	"so natural":          "쏘내추럴",
	"mary&may":            "에이드코리아컴퍼니",
	"mary and may":        "에이드코리아컴퍼니",
	"axis-y":              "아시아마스터트레이드",
	"axisy":               "아시아마스터트레이드",
	"skin&lab":            "랩앤컴퍼니",
	"skinlab":             "랩앤컴퍼니",
	"rovectin":            "알엘에이피",
	"nacific":             "어빌코리아",
	"wellage":             "휴젤",
	"farmstay":            "명인코스메틱스",
	"brtc":                "아미코스메틱",
	"enough":              "케이엠컴퍼니",
	"beplain":             "모먼츠컴퍼니",
	"ariul":               "뷰티팩토리",
	"about me":            "삼양사",
	"eqqualberry":         "부스터스",
	"dr.melaxin":          "브랜드501",
	"erborian":            "로시땅그룹",
}

// tier1Companies are marketing-heavy conglomerates, or brands acquired by
// global luxury groups, excluded from hidden-gem rankings.
var tier1Companies = map[string]struct{}{
	amorepacific: {},
	lgHH:         {},
	clio:         {},
	apr:          {},
	"해브앤비":      {},
	"카버코리아":     {},
	"난다":        {},
	"로시땅그룹":     {},
}
