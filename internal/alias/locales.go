package alias

import "time"

// locale is an ordered list of spellings for one language. Spellings are
// compared after lower-casing, accent folding and dropping a trailing ".".
type locale struct {
	name   string
	months [12][]string
}

// locales is consulted in order; the first locale to claim a spelling owns
// it. English comes first so that its abbreviations win any collision.
var locales = []locale{
	{
		name: "en",
		months: [12][]string{
			{"january", "jan", "janu", "janr", "jany", "januray", "janurary", "janaury", "januar"},
			{"february", "feb", "febr", "feby", "febry", "febuary", "feburary", "februray", "febrary"},
			{"march", "mar", "mch", "mrch", "marh"},
			{"april", "apr", "apl", "aprl", "aprile"},
			{"may"},
			{"june", "jun", "jne"},
			{"july", "jul", "jly", "juli"},
			{"august", "aug", "augt", "agust", "augst", "agosto"},
			{"september", "sep", "sept", "sepr", "septr", "setp", "septmber", "septemer", "septembre"},
			{"october", "oct", "octr", "octo", "octobre", "ocotber"},
			{"november", "nov", "novr", "novem", "novembre", "novmber"},
			{"december", "dec", "decr", "decem", "decembre", "decmber", "decemer"},
		},
	},
	{
		name: "fr",
		months: [12][]string{
			{"janvier", "janv"},
			{"fevrier", "fevr", "fev"},
			{"mars"},
			{"avril", "avr"},
			{"mai"},
			{"juin"},
			{"juillet", "juil"},
			{"aout"},
			{"septembre"},
			{"octobre"},
			{"novembre"},
			{"decembre"},
		},
	},
	{
		name: "es",
		months: [12][]string{
			{"enero", "ene"},
			{"febrero"},
			{"marzo"},
			{"abril", "abr"},
			{"mayo"},
			{"junio"},
			{"julio"},
			{"agosto", "ago"},
			{"septiembre", "setiembre", "set"},
			{"octubre"},
			{"noviembre"},
			{"diciembre", "dic"},
		},
	},
	{
		name: "pt",
		months: [12][]string{
			{"janeiro"},
			{"fevereiro"},
			{"marco"},
			{},
			{"maio"},
			{"junho"},
			{"julho"},
			{},
			{"setembro"},
			{"outubro"},
			{"novembro"},
			{"dezembro", "dez"},
		},
	},
	{
		name: "it",
		months: [12][]string{
			{"gennaio", "gen"},
			{"febbraio", "febb"},
			{},
			{},
			{"maggio", "magg", "mag"},
			{"giugno", "giu"},
			{"luglio", "lug"},
			{},
			{"settembre", "sett"},
			{"ottobre", "ott"},
			{},
			{"dicembre"},
		},
	},
	{
		name: "de",
		months: [12][]string{
			{"jaenner", "janner"},
			{},
			{"maerz", "marz", "mrz"},
			{},
			{},
			{},
			{},
			{},
			{},
			{"oktober", "okt"},
			{},
			{"dezember"},
		},
	},
	{
		name: "nl",
		months: [12][]string{
			{"januari"},
			{"februari"},
			{"maart", "mrt"},
			{},
			{"mei"},
			{"juni"},
			{},
			{"augustus"},
			{},
			{},
			{},
			{},
		},
	},
	{
		name: "da",
		months: [12][]string{
			{},
			{"februar"},
			{"marts"},
			{},
			{"maj"},
			{},
			{},
			{},
			{},
			{},
			{},
			{},
		},
	},
	{
		name: "sv",
		months: [12][]string{
			{},
			{},
			{},
			{},
			{},
			{},
			{},
			{"augusti"},
			{},
			{},
			{},
			{},
		},
	},
	{
		name: "cy",
		months: [12][]string{
			{"ionawr", "ion"},
			{"chwefror", "chwef"},
			{"mawrth", "maw"},
			{"ebrill", "ebr"},
			{},
			{"mehefin", "meh"},
			{"gorffennaf", "gorff", "gorf"},
			{"awst"},
			{"medi"},
			{"hydref", "hyd"},
			{"tachwedd", "tach"},
			{"rhagfyr", "rhag"},
		},
	},
	{
		name: "la",
		months: [12][]string{
			{"januarius", "ianuarius", "januarii", "ianuarii"},
			{"februarius", "februarii"},
			{"martius", "martii"},
			{"aprilis"},
			{"maius", "maii"},
			{"junius", "iunius", "junii", "iunii"},
			{"julius", "iulius", "julii", "iulii"},
			{"augustus", "augusti"},
			{"september", "septembris"},
			{"october", "octobris"},
			{"november", "novembris"},
			{"december", "decembris"},
		},
	},
}

// romanMonths lists the standalone numerals accepted as months.
var romanMonths = map[string]time.Month{
	"i": time.January, "ii": time.February, "iii": time.March, "iv": time.April,
	"v": time.May, "vi": time.June, "vii": time.July, "viii": time.August,
	"ix": time.September, "x": time.October, "xi": time.November, "xii": time.December,
}

// dayWords maps spelled-out days of the month. Compound forms are stored
// with a single hyphen; callers fold spaces into hyphens before lookup.
var dayWords = map[string]int{
	"first": 1, "second": 2, "third": 3, "fourth": 4, "fifth": 5,
	"sixth": 6, "seventh": 7, "eighth": 8, "ninth": 9, "tenth": 10,
	"eleventh": 11, "twelfth": 12, "thirteenth": 13, "fourteenth": 14, "fifteenth": 15,
	"sixteenth": 16, "seventeenth": 17, "eighteenth": 18, "nineteenth": 19, "twentieth": 20,
	"twenty-first": 21, "twenty-second": 22, "twenty-third": 23, "twenty-fourth": 24,
	"twenty-fifth": 25, "twenty-sixth": 26, "twenty-seventh": 27, "twenty-eighth": 28,
	"twenty-ninth": 29, "thirtieth": 30, "thirty-first": 31,

	"one": 1, "two": 2, "three": 3, "four": 4, "five": 5,
	"six": 6, "seven": 7, "eight": 8, "nine": 9, "ten": 10,
	"eleven": 11, "twelve": 12, "thirteen": 13, "fourteen": 14, "fifteen": 15,
	"sixteen": 16, "seventeen": 17, "eighteen": 18, "nineteen": 19, "twenty": 20,
	"twenty-one": 21, "twenty-two": 22, "twenty-three": 23, "twenty-four": 24,
	"twenty-five": 25, "twenty-six": 26, "twenty-seven": 27, "twenty-eight": 28,
	"twenty-nine": 29, "thirty": 30, "thirty-one": 31,
}

// ideographicDigits covers the CJK digits used in written years.
var ideographicDigits = map[rune]rune{
	'〇': '0', '零': '0', '一': '1', '二': '2', '三': '3', '四': '4',
	'五': '5', '六': '6', '七': '7', '八': '8', '九': '9',
}

// ideographicNumbers are ordered longest first so that 十二 is consumed
// before 十 or 二 can match.
var ideographicNumbers = []struct {
	pattern string
	value   int
}{
	{"三十一", 31},
	{"三十", 30},
	{"二十九", 29},
	{"二十八", 28},
	{"二十七", 27},
	{"二十六", 26},
	{"二十五", 25},
	{"二十四", 24},
	{"二十三", 23},
	{"二十二", 22},
	{"二十一", 21},
	{"二十", 20},
	{"十九", 19},
	{"十八", 18},
	{"十七", 17},
	{"十六", 16},
	{"十五", 15},
	{"十四", 14},
	{"十三", 13},
	{"十二", 12},
	{"十一", 11},
	{"十", 10},
	{"九", 9},
	{"八", 8},
	{"七", 7},
	{"六", 6},
	{"五", 5},
	{"四", 4},
	{"三", 3},
	{"二", 2},
	{"一", 1},
}
