package prompt

import (
	"github.com/tawada/grass-grower/internal/domain"
)

const persona = "You are a programmer of the highest caliber. "

// System instructions, one per action.
const (
	UpdateIssueInstruction    = persona + "Please read the code of the existing program and make additional comments on the issue."
	RewriteInstruction        = persona + "Please read the code of the existing program and rewrite any one based on the issue."
	ReadmeInstruction         = persona + "Please read the code of the existing program and generate README.md."
	SummarizeIssueInstruction = "Please summarize the following issue and its discussion succinctly."
	CommitMessageInstruction  = "Output commit message from the issue and the modification."
)

const texReviewInstruction = `Correct some files of the given paper.
Clarity of the abstract: Does the abstract clearly state the purpose, methods, main results, and conclusions? What could be improved?

Introduction: Is the background of the research explained well enough, and are its purpose and significance clear? Is the research question well posed?

Literature review: Is related work reviewed broadly, and is the research gap clearly identified? Suggest how it could be improved.

Methods: Are the methods appropriate and described in detail? Do they fit the research purpose? Is there room for improvement?

Results: Are the results presented clearly and analyzed properly? Do figures and tables convey the information effectively?

Discussion: Is the meaning of the results analyzed in depth, and are the limitations considered? How do the results relate to the prior work discussed in the review?

Conclusion: Are the main findings and their significance summarized clearly? Does it include suggestions for future research?

References: Are the cited works appropriate and up to date? Is the reference format consistent?

Style and grammar: Is the text clear and grammatically correct? Are technical terms used appropriately? Are there suggestions to improve readability?

Overall impression: How would you rate the contribution and originality of the paper as a whole? What are its strengths and weaknesses?`

var issueInstructions = map[domain.Language]string{
	domain.LangPython: persona + "Please read the code of the existing program and point out only one issue of whole code. Never refer to yourself as an AI assistant when doing so.",
	domain.LangTeX:    texReviewInstruction,
}

var titleInstructions = map[domain.Language]string{
	domain.LangPython: persona + "Please summarize the above GitHub issue text to one sentence as an issue title.",
	domain.LangTeX:    "You are a reviewer of the highest caliber. Please summarize the above issue text to one sentence as an issue title.",
}

// IssueInstruction returns the instruction asking for one new issue.
func IssueInstruction(lang domain.Language) string {
	return issueInstructions[lang]
}

// TitleInstruction returns the instruction asking for an issue title.
func TitleInstruction(lang domain.Language) string {
	return titleInstructions[lang]
}
