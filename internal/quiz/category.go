package quiz

// Section groups categories the way the JLPT groups exam sections.
type Section string

const (
	SectionVocabulary Section = "vocabulary"
	SectionGrammar    Section = "grammar"
	SectionReading    Section = "reading"
	SectionReview     Section = "review"
)

// DisplayName returns the Japanese section heading.
func (s Section) DisplayName() string {
	switch s {
	case SectionVocabulary:
		return "文字・語彙"
	case SectionGrammar:
		return "文法"
	case SectionReading:
		return "読解"
	case SectionReview:
		return "復習"
	}
	return string(s)
}

// ReviewCategoryID identifies the synthetic mistake-bank category.
const ReviewCategoryID = "review_mistakes"

// Category describes one of the fixed exam-section templates that drive
// prompt construction and question count. Immutable reference data.
type Category struct {
	ID          string
	Section     Section
	Title       string // Japanese display label
	TitleEN     string
	Count       int
	Description string

	// Instructions is the category-specific portion of the generation
	// prompt: format rules, markup requirements, difficulty constraints.
	Instructions string
}

// IsReview reports whether this is the mistake-bank review category.
func (c Category) IsReview() bool {
	return c.ID == ReviewCategoryID
}

// ReviewCategory synthesizes the mistake-bank category from the current
// bank size. It is never generated against; its questions come straight
// from the bank.
func ReviewCategory(count int) Category {
	return Category{
		ID:          ReviewCategoryID,
		Section:     SectionReview,
		Title:       "間違えた問題",
		TitleEN:     "Review Mistakes",
		Count:       count,
		Description: "これまでに間違えた問題をもう一度解く",
	}
}

// categories is the static catalog. Order matters: the menu renders it
// grouped by section in this order.
var categories = []Category{
	{
		ID:          "vocab_readings",
		Section:     SectionVocabulary,
		Title:       "漢字読み",
		TitleEN:     "Kanji Readings",
		Count:       6,
		Description: "下線の漢字の読み方を選ぶ",
		Instructions: "Each question presents one Japanese sentence containing a single " +
			"advanced kanji word wrapped in <u></u> tags. The four options are hiragana " +
			"readings of that word; exactly one is correct. Distractors must be plausible " +
			"misreadings (on/kun confusion, voicing, vowel length), not random strings.",
	},
	{
		ID:          "vocab_context",
		Section:     SectionVocabulary,
		Title:       "文脈規定",
		TitleEN:     "Contextual Usage",
		Count:       6,
		Description: "（　　）に入る最も適切な語を選ぶ",
		Instructions: "Each question is a sentence with one word replaced by the blank " +
			"（　　）. The four options are words of the same part of speech; exactly one " +
			"fits the context naturally. Prefer N1-level nouns, verbal nouns, adverbs, and " +
			"mimetic words that frequently appear on the real exam.",
	},
	{
		ID:          "vocab_paraphrase",
		Section:     SectionVocabulary,
		Title:       "言い換え類義",
		TitleEN:     "Paraphrase",
		Count:       6,
		Description: "下線の語に意味が最も近いものを選ぶ",
		Instructions: "Each question presents a sentence with one word or phrase wrapped " +
			"in <u></u> tags. The four options are candidate synonyms or paraphrases; " +
			"exactly one is closest in meaning as used in the sentence.",
	},
	{
		ID:          "vocab_usage",
		Section:     SectionVocabulary,
		Title:       "用法",
		TitleEN:     "Word Usage",
		Count:       5,
		Description: "語の使い方として最も適切な文を選ぶ",
		Instructions: "Each question names a target word on the first line, e.g. " +
			"「念願」. The four options are complete sentences using that word; exactly one " +
			"uses it naturally and correctly. The wrong sentences must contain the target " +
			"word used in a subtly unnatural way.",
	},
	{
		ID:          "grammar_forms",
		Section:     SectionGrammar,
		Title:       "文法形式の判断",
		TitleEN:     "Grammar Forms",
		Count:       6,
		Description: "文に合う文法形式を選ぶ",
		Instructions: "Each question is a sentence with the blank （　　） where a grammar " +
			"pattern belongs. The four options are N1 grammar forms (〜んがために, 〜とあって, " +
			"〜であれ, 〜きらいがある and the like); exactly one completes the sentence " +
			"grammatically and semantically.",
	},
	{
		ID:          "grammar_composition",
		Section:     SectionGrammar,
		Title:       "文の組み立て",
		TitleEN:     "Sentence Composition",
		Count:       5,
		Description: "＿★＿に入る語を選ぶ",
		Instructions: "Each question is a scrambled-sentence item: show a sentence with " +
			"four blanks ＿＿ ＿＿ ＿★＿ ＿＿ and give the four fragments as the options. " +
			"The correct answer is the fragment that belongs in the starred position when " +
			"the fragments are arranged into the only natural order.",
	},
	{
		ID:          "grammar_text",
		Section:     SectionGrammar,
		Title:       "文章の文法",
		TitleEN:     "Text Grammar",
		Count:       5,
		Description: "文章の流れに合う表現を選ぶ",
		Instructions: "Each question quotes a short passage of 2-4 sentences with one " +
			"blank （　　）. The four options are connective or sentence-final expressions; " +
			"exactly one fits the logical flow of the passage. Test cohesion, not isolated " +
			"grammar.",
	},
	{
		ID:          "reading_short",
		Section:     SectionReading,
		Title:       "短文読解",
		TitleEN:     "Short Passages",
		Count:       3,
		Description: "短い文章を読んで内容に答える",
		Instructions: "Each question embeds a short passage (120-200 characters) on an " +
			"abstract or editorial topic, followed by one comprehension question such as " +
			"筆者の考えに合うものはどれか. The four options are statements about the passage; " +
			"exactly one is supported by the text.",
	},
	{
		ID:          "reading_mid",
		Section:     SectionReading,
		Title:       "中文読解",
		TitleEN:     "Medium Passages",
		Count:       2,
		Description: "やや長い文章を読んで内容に答える",
		Instructions: "Each question embeds a medium passage (300-450 characters) in the " +
			"style of an essay or newspaper column, followed by one question about the " +
			"author's claim, a referent, or the reason for a statement. The four options " +
			"are statements; exactly one is correct.",
	},
}

// Categories returns the static category catalog.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// CategoryByID looks up a static category. Returns false for unknown IDs,
// including the synthetic review category.
func CategoryByID(id string) (Category, bool) {
	for _, c := range categories {
		if c.ID == id {
			return c, true
		}
	}
	return Category{}, false
}
