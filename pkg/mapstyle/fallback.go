package mapstyle

import "lingomap/pkg/model"

func speakers(n int64) *int64 { return &n }

// fallbackCountries covers territories the catalogue does not list. Entries
// are stubs; a catalogue record with the same ID takes precedence.
var fallbackCountries = map[string][]model.LanguageRecord{
	"IS": {{ID: "isl", DisplayName: "Icelandic", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic", Group: "North Germanic"}, TotalSpeakers: speakers(330000)}},
	"NO": {{ID: "nor", DisplayName: "Norwegian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic", Group: "North Germanic"}, TotalSpeakers: speakers(5300000)}},
	"SE": {{ID: "swe", DisplayName: "Swedish", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic", Group: "North Germanic"}, TotalSpeakers: speakers(10000000)}},
	"DK": {{ID: "dan", DisplayName: "Danish", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Germanic", Group: "North Germanic"}, TotalSpeakers: speakers(6000000)}},
	"CZ": {{ID: "ces", DisplayName: "Czech", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "West Slavic"}, TotalSpeakers: speakers(10700000)}},
	"SK": {{ID: "slk", DisplayName: "Slovak", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "West Slavic"}, TotalSpeakers: speakers(5200000)}},
	"RO": {{ID: "ron", DisplayName: "Romanian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Romance", Group: "Eastern Romance"}, TotalSpeakers: speakers(24000000)}},
	"BG": {{ID: "bul", DisplayName: "Bulgarian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "South Slavic"}, TotalSpeakers: speakers(8000000)}},
	"RS": {{ID: "srp", DisplayName: "Serbian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "South Slavic"}, TotalSpeakers: speakers(12000000)}},
	"HR": {{ID: "hrv", DisplayName: "Croatian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "South Slavic"}, TotalSpeakers: speakers(5600000)}},
	"LT": {{ID: "lit", DisplayName: "Lithuanian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "Baltic"}, TotalSpeakers: speakers(3000000)}},
	"LV": {{ID: "lav", DisplayName: "Latvian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Balto-Slavic", Group: "Baltic"}, TotalSpeakers: speakers(1750000)}},
	"EE": {{ID: "est", DisplayName: "Estonian", Taxonomy: model.Taxonomy{Family: "Uralic", Branch: "Finnic"}, TotalSpeakers: speakers(1100000)}},
	"AM": {{ID: "hye", DisplayName: "Armenian", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Armenian"}, TotalSpeakers: speakers(6700000)}},
	"GE": {{ID: "kat", DisplayName: "Georgian", Taxonomy: model.Taxonomy{Family: "Kartvelian"}, TotalSpeakers: speakers(3700000)}},
	"AZ": {{ID: "azj", DisplayName: "Azerbaijani", Taxonomy: model.Taxonomy{Family: "Turkic", Branch: "Oghuz"}, TotalSpeakers: speakers(24000000)}},
	"MN": {{ID: "khk", DisplayName: "Mongolian", Taxonomy: model.Taxonomy{Family: "Mongolic"}, TotalSpeakers: speakers(5200000)}},
	"NP": {{ID: "npi", DisplayName: "Nepali", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Indo-Iranian", Group: "Indo-Aryan"}, TotalSpeakers: speakers(32000000)}},
	"PK": {{ID: "urd", DisplayName: "Urdu", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Indo-Iranian", Group: "Indo-Aryan"}, TotalSpeakers: speakers(230000000)}},
	"ET": {{ID: "amh", DisplayName: "Amharic", Taxonomy: model.Taxonomy{Family: "Afro-Asiatic", Branch: "Semitic", Group: "South Semitic"}, TotalSpeakers: speakers(57000000)}},
	"SO": {{ID: "som", DisplayName: "Somali", Taxonomy: model.Taxonomy{Family: "Afro-Asiatic", Branch: "Cushitic"}, TotalSpeakers: speakers(22000000)}},
	"MG": {{ID: "plt", DisplayName: "Malagasy", Taxonomy: model.Taxonomy{Family: "Austronesian", Branch: "Malayo-Polynesian"}, TotalSpeakers: speakers(25000000)}},
	"PH": {{ID: "tgl", DisplayName: "Tagalog", Taxonomy: model.Taxonomy{Family: "Austronesian", Branch: "Malayo-Polynesian", Group: "Philippine"}, TotalSpeakers: speakers(83000000)}},
	"KH": {{ID: "khm", DisplayName: "Khmer", Taxonomy: model.Taxonomy{Family: "Austroasiatic", Branch: "Khmeric"}, TotalSpeakers: speakers(18000000)}},
	"LA": {{ID: "lao", DisplayName: "Lao", Taxonomy: model.Taxonomy{Family: "Kra-Dai", Branch: "Tai"}, TotalSpeakers: speakers(30000000)}},
	"MM": {{ID: "mya", DisplayName: "Burmese", Taxonomy: model.Taxonomy{Family: "Sino-Tibetan", Branch: "Lolo-Burmese"}, TotalSpeakers: speakers(43000000)}},
	"GL": {{ID: "kal", DisplayName: "Greenlandic", Taxonomy: model.Taxonomy{Family: "Eskimo-Aleut", Branch: "Inuit"}, TotalSpeakers: speakers(57000)}},
	"AD": {{ID: "cat", DisplayName: "Catalan", Taxonomy: model.Taxonomy{Family: "Indo-European", Branch: "Romance", Group: "Western Romance"}, TotalSpeakers: speakers(10000000)}},
	"PG": {{ID: "tpi", DisplayName: "Tok Pisin", Taxonomy: model.Taxonomy{Family: "Creole"}, TotalSpeakers: speakers(4000000)}},
	"AQ": {{ID: "und", DisplayName: "Uninhabited"}},
}
