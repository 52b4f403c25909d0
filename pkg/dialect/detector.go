package dialect

import (
	"sort"
	"strings"
)

// Standard is reported when no dialect clears the confidence threshold.
const Standard = "standard"

// DefaultThreshold is the minimum normalized score for a positive match.
const DefaultThreshold = 0.3

// Feature weights. Phonetic cues are invisible in text; they score zero but
// keep their share of the denominator.
const (
	weightVocabulary = 3.0
	weightGrammar    = 2.0
	weightPhonetic   = 1.5
	weightUnique     = 4.0
)

// Indicators are the textual markers of one dialect.
type Indicators struct {
	ID         string
	LanguageID string // catalogue language carrying the dialect
	Dialect    string // catalogue dialect name
	Vocabulary []string
	Grammar    []string
	Unique     []string
}

// Detection is the outcome of Detect.
type Detection struct {
	Dialect     string             `json:"dialect"`
	LanguageID  string             `json:"languageId,omitempty"`
	DialectName string             `json:"dialectName,omitempty"`
	Confidence  float64            `json:"confidence"`
	Scores      map[string]float64 `json:"scores"`
}

var defaultIndicators = []Indicators{
	{
		ID: "shanghai", LanguageID: "wuu", Dialect: "Shanghainese",
		Vocabulary: []string{"侬", "阿拉", "今朝", "蛮好", "再会", "啥", "哪能", "啥地方", "谢谢侬", "做生活", "困觉", "屋里", "学堂", "伊", "伊拉", "个", "个能", "个么", "个辰光"},
		Grammar:    []string{"啥地方", "哪能", "做生活", "困觉", "个能", "个么", "个辰光", "个搭", "个里", "个面"},
		Unique:     []string{"侬好", "今朝", "蛮好", "阿拉", "伊拉", "个能"},
	},
	{
		ID: "sichuan", LanguageID: "cmn", Dialect: "Sichuanese",
		Vocabulary: []string{"巴适", "安逸", "要得", "瓜娃子", "哈儿", "锤子", "整", "得行", "咋个", "啥子", "啷个", "巴适得很"},
		Grammar:    []string{"巴适得很", "要得不", "咋个整", "啷个办", "啥子嘛"},
		Unique:     []string{"巴适", "安逸", "要得", "瓜娃子", "哈儿"},
	},
	{
		ID: "gyeongsang", LanguageID: "kor", Dialect: "Gyeongsang",
		Vocabulary: []string{"오이소", "모하노", "어디가", "뭐하노", "어떻게", "왜그래", "그래서", "그러면", "그런데", "그러니까"},
		Grammar:    []string{"오이소", "모하노", "어디가", "뭐하노", "왜그래"},
		Unique:     []string{"오이소", "모하노", "어디가", "뭐하노"},
	},
	{
		ID: "jeju", LanguageID: "kor", Dialect: "Jeju",
		Vocabulary: []string{"혼저", "옵서예", "하르방", "할망", "고사리", "돌하르방", "돌하르방이", "돌하르방이야", "돌하르방이요"},
		Grammar:    []string{"혼저 옵서예", "하르방", "할망", "돌하르방"},
		Unique:     []string{"혼저 옵서예", "하르방", "할망", "돌하르방"},
	},
}

// Detector guesses the dialect of a text from indicator vocabulary.
type Detector struct {
	dialects  []Indicators
	threshold float64
}

// NewDetector returns a detector over the bundled indicators.
func NewDetector(threshold float64) *Detector {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	return &Detector{dialects: defaultIndicators, threshold: threshold}
}

// Dialects returns the IDs the detector can report, sorted.
func (d *Detector) Dialects() []string {
	ids := make([]string, 0, len(d.dialects))
	for _, ind := range d.dialects {
		ids = append(ids, ind.ID)
	}
	sort.Strings(ids)
	return ids
}

// Detect scores text against every dialect. The best score below the
// threshold reports Standard; ties go to the earlier dialect.
func (d *Detector) Detect(text string) Detection {
	res := Detection{Dialect: Standard, Scores: make(map[string]float64, len(d.dialects))}
	if strings.TrimSpace(text) == "" {
		return res
	}

	best := -1
	bestScore := 0.0
	for i, ind := range d.dialects {
		s := score(text, &ind)
		res.Scores[ind.ID] = s
		if best < 0 || s > bestScore {
			best, bestScore = i, s
		}
	}

	res.Confidence = bestScore
	if best < 0 || bestScore < d.threshold {
		return res
	}
	ind := d.dialects[best]
	res.Dialect = ind.ID
	res.LanguageID = ind.LanguageID
	res.DialectName = ind.Dialect
	return res
}

func score(text string, ind *Indicators) float64 {
	total := ratio(text, ind.Vocabulary)*weightVocabulary +
		ratio(text, ind.Grammar)*weightGrammar +
		ratio(text, ind.Unique)*weightUnique
	return total / (weightVocabulary + weightGrammar + weightPhonetic + weightUnique)
}

// ratio is the share of patterns that occur in text.
func ratio(text string, patterns []string) float64 {
	if len(patterns) == 0 {
		return 0
	}
	n := 0
	for _, p := range patterns {
		if strings.Contains(text, p) {
			n++
		}
	}
	return float64(n) / float64(len(patterns))
}
