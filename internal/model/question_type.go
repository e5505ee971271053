package model

// QuestionType is the closed set of question kinds an exam can contain.
type QuestionType string

const (
	TrueFalseNotGiven       QuestionType = "true_false_not_given"
	YesNoNotGiven           QuestionType = "yes_no_not_given"
	MatchingHeadings        QuestionType = "matching_headings"
	MatchingInformation     QuestionType = "matching_information"
	MatchingFeatures        QuestionType = "matching_features"
	MatchingSentenceEndings QuestionType = "matching_sentence_endings"
	SentenceCompletion      QuestionType = "sentence_completion"
	SummaryCompletion       QuestionType = "summary_completion"
	NoteCompletion          QuestionType = "note_completion"
	TableCompletion         QuestionType = "table_completion"
	FlowChartCompletion     QuestionType = "flow_chart_completion"
	DiagramLabelCompletion  QuestionType = "diagram_label_completion"
	MultipleChoice          QuestionType = "multiple_choice"
	ListSelection           QuestionType = "list_selection"
	ShortAnswer             QuestionType = "short_answer"
)

type questionTypeInfo struct {
	title        string
	instructions string
}

var questionTypes = map[QuestionType]questionTypeInfo{
	TrueFalseNotGiven: {
		"True/False/Not Given Questions",
		"Choose True if the statement agrees with the information, False if it contradicts, or Not Given if there is no information.",
	},
	YesNoNotGiven: {
		"Yes/No/Not Given Questions",
		"Choose Yes if the statement agrees with the information, No if it contradicts, or Not Given if there is no information.",
	},
	MatchingHeadings: {
		"Matching Headings Questions",
		"Match each heading with the appropriate paragraph or section.",
	},
	MatchingInformation: {
		"Matching Information Questions",
		"Match the information in the passage with the correct answer.",
	},
	MatchingFeatures: {
		"Matching Features Questions",
		"Match the features in the passage with the correct answer.",
	},
	MatchingSentenceEndings: {
		"Matching Sentence Endings Questions",
		"Match the sentence endings in the passage with the correct answer.",
	},
	SentenceCompletion: {
		"Sentence Completion Questions",
		"Complete the sentence in the passage with the correct answer.",
	},
	SummaryCompletion: {
		"Summary Completion Questions",
		"Complete the summary in the passage with the correct answer.",
	},
	NoteCompletion: {
		"Note Completion Questions",
		"Complete the note in the passage with the correct answer.",
	},
	TableCompletion: {
		"Table Completion Questions",
		"Complete the table in the passage with the correct answer.",
	},
	FlowChartCompletion: {
		"Flow Chart Completion Questions",
		"Complete the flow chart in the passage with the correct answer.",
	},
	DiagramLabelCompletion: {
		"Diagram Label Completion Questions",
		"Complete the diagram label in the passage with the correct answer.",
	},
	MultipleChoice: {
		"Multiple Choice Questions",
		"Choose the best answer from the options given.",
	},
	ListSelection: {
		"List Selection Questions",
		"Select the correct answer from the list given.",
	},
	ShortAnswer: {
		"Short Answer Questions",
		"Answer the questions in no more than the specified number of words.",
	},
}

func (t QuestionType) Valid() bool {
	_, ok := questionTypes[t]
	return ok
}

// Title is the section heading used when a category starts with this type.
func (t QuestionType) Title() string {
	return questionTypes[t].title
}

func (t QuestionType) Instructions() string {
	return questionTypes[t].instructions
}
