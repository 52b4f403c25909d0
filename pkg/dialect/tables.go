package dialect

import "lingomap/pkg/model"

// Substitution rewrites standard vocabulary into a dialect form.
type Substitution struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Shanghainese (Wu) vocabulary over standard Mandarin.
var shanghainese = []Substitution{
	{"你好", "侬好"},
	{"今天", "今朝"},
	{"很好", "蛮好"},
	{"我们", "阿拉"},
	{"你们", "侬拉"},
	{"他们", "伊拉"},
	{"什么", "啥"},
	{"怎么", "哪能"},
	{"哪里", "啥地方"},
	{"谢谢", "谢谢侬"},
	{"再见", "再会"},
	{"睡觉", "困觉"},
	{"工作", "做生活"},
	{"学习", "读书"},
	{"家", "屋里"},
	{"学校", "学堂"},
	{"商店", "店"},
}

// Sichuanese (Southwestern Mandarin).
var sichuanese = []Substitution{
	{"很好", "巴适"},
	{"可以", "要得"},
	{"怎么样", "啷个"},
	{"什么", "啥子"},
	{"怎么", "啷个"},
	{"哪里", "哪搭"},
	{"这里", "这搭"},
	{"那里", "那搭"},
}

// Kana readings for Japanese words that speech engines commonly misread.
var japaneseReadings = []Substitution{
	{"今日", "きょう"},
	{"明日", "あした"},
	{"昨日", "きのう"},
	{"曜日", "ようび"},
	{"時間", "じかん"},
	{"分間", "ふんかん"},
	{"秒間", "びょうかん"},
	{"年間", "ねんかん"},
	{"月間", "げっかん"},
	{"日間", "にちかん"},
	{"天気", "てんき"},
	{"晴れ", "はれ"},
	{"曇り", "くもり"},
	{"暑い", "あつい"},
	{"寒い", "さむい"},
	{"暖かい", "あたたかい"},
	{"涼しい", "すずしい"},
	{"東京", "とうきょう"},
	{"大阪", "おおさか"},
	{"京都", "きょうと"},
	{"名古屋", "なごや"},
	{"福岡", "ふくおか"},
	{"札幌", "さっぽろ"},
	{"仙台", "せんだい"},
	{"広島", "ひろしま"},
	{"鹿児島", "かごしま"},
	{"沖縄", "おきなわ"},
}

// languageLocales holds the default BCP-47 locale per catalogue language.
var languageLocales = map[string]string{
	"cmn": "cmn-CN",
	"yue": "yue-HK",
	"wuu": "cmn-CN", // no cloud voice speaks Wu; Mandarin voices carry the substituted text
	"nan": "cmn-TW",
	"jpn": "ja-JP",
	"kor": "ko-KR",
	"eng": "en-US",
	"spa": "es-ES",
	"por": "pt-BR",
	"fra": "fr-FR",
	"deu": "de-DE",
	"ita": "it-IT",
	"nld": "nl-NL",
	"rus": "ru-RU",
	"ukr": "uk-UA",
	"pol": "pl-PL",
	"ell": "el-GR",
	"hin": "hi-IN",
	"ben": "bn-IN",
	"tam": "ta-IN",
	"arb": "ar-EG",
	"heb": "he-IL",
	"pes": "fa-IR",
	"tur": "tr-TR",
	"vie": "vi-VN",
	"tha": "th-TH",
	"ind": "id-ID",
	"swh": "sw-KE",
	"yor": "yo-NG",
	"fin": "fi-FI",
	"hun": "hu-HU",
}

type pairLocale struct {
	lang, dialect, locale string
}

var dialectLocales = []pairLocale{
	{"eng", "British", "en-GB"},
	{"eng", "Australian", "en-AU"},
	{"eng", "Indian", "en-IN"},
	{"spa", "Mexican", "es-MX"},
	{"spa", "Rioplatense", "es-AR"},
	{"por", "European", "pt-PT"},
	{"fra", "Québécois", "fr-CA"},
	{"deu", "Swiss German", "de-CH"},
	{"deu", "Austrian", "de-AT"},
	{"cmn", "Taiwanese Mandarin", "cmn-TW"},
	{"arb", "Gulf", "ar-AE"},
}

// Dialect-name aliases that hold for whichever language carries them.
var aliasLocales = map[string]string{
	"Cantonese":    "yue-HK",
	"Hong Kong":    "yue-HK",
	"Taiwanese":    "cmn-TW",
	"Shanghainese": "cmn-CN",
}

// prosodyByDialect holds per-dialect speaking style. Pitch is in semitones.
var prosodyByDialect = map[string]model.Prosody{
	"Shanghainese": {Rate: 0.95, Pitch: 0.2, Volume: 1.0},
	"Sichuanese":   {Rate: 1.05, Pitch: 0.5, Volume: 1.0},
	"Tokyo":        {Rate: 1.0, Pitch: 0, Volume: 1.0},
	"Osaka":        {Rate: 1.10, Pitch: 2.0, Volume: 1.0},
	"Kansai":       {Rate: 1.10, Pitch: 2.0, Volume: 1.0},
	"Kyoto":        {Rate: 0.90, Pitch: -1.0, Volume: 1.0},
	"Hiroshima":    {Rate: 1.05, Pitch: 1.0, Volume: 1.0},
	"Fukuoka":      {Rate: 0.95, Pitch: -0.5, Volume: 1.0},
	"Hakata":       {Rate: 0.95, Pitch: -0.5, Volume: 1.0},
	"Sendai":       {Rate: 0.90, Pitch: -1.0, Volume: 1.0},
	"Nagoya":       {Rate: 1.0, Pitch: 0, Volume: 1.0},
	"Sapporo":      {Rate: 0.85, Pitch: -1.5, Volume: 1.0},
	"Tsugaru":      {Rate: 0.85, Pitch: -1.5, Volume: 1.0},
	"Okinawan":     {Rate: 1.15, Pitch: 3.0, Volume: 1.0},
	"Kagoshima":    {Rate: 1.05, Pitch: 0.5, Volume: 1.0},
	"Gyeongsang":   {Rate: 1.05, Pitch: 1.5, Volume: 1.0},
	"Jeju":         {Rate: 0.95, Pitch: 0.5, Volume: 1.0},
}

// Google Cloud voice names. Dialects with a brisk delivery get the male
// Neural2 voice, softer ones the female.
var googleLanguageVoices = map[string]string{
	"cmn": "cmn-CN-Wavenet-A",
	"wuu": "cmn-CN-Wavenet-A",
	"yue": "yue-HK-Standard-A",
	"jpn": "ja-JP-Neural2-B",
	"kor": "ko-KR-Neural2-A",
	"eng": "en-US-Neural2-F",
}

var googleDialectVoices = map[string]string{
	"Osaka":     "ja-JP-Neural2-C",
	"Kansai":    "ja-JP-Neural2-C",
	"Hiroshima": "ja-JP-Neural2-C",
	"Fukuoka":   "ja-JP-Neural2-C",
	"Hakata":    "ja-JP-Neural2-C",
	"Okinawan":  "ja-JP-Neural2-C",
	"Kagoshima": "ja-JP-Neural2-C",
	"Kyoto":     "ja-JP-Neural2-B",
	"Sendai":    "ja-JP-Neural2-B",
	"Sapporo":   "ja-JP-Neural2-B",
	"Tsugaru":   "ja-JP-Neural2-B",
	"British":   "en-GB-Neural2-A",
}
