package chat

import (
	"context"
	"fmt"

	"github.com/aditya22034/CodeWhisper/internal/llm"
)

// Label is the classification of an incoming question. It decides which
// retrieval strategy assembles the context.
type Label string

const (
	LabelGeneral         Label = "GENERAL"
	LabelFile            Label = "FILE"
	LabelFunctionOrClass Label = "FUNCTION&CLASS"
	LabelFollowUp        Label = "FOLLOWUP"
)

type classificationOutput struct {
	Label string `json:"label" jsonschema:"enum=GENERAL,enum=FILE,enum=FUNCTION&CLASS,enum=FOLLOWUP,description=Label for the user question. GENERAL for whole-repo or conceptual questions naming no specific file or symbol. FILE when the question names a single specific file. FUNCTION&CLASS when the question names a function or class. FOLLOWUP when the question refers to the prior conversation and needs no fresh repository context."`
}

var classificationSchema = llm.GenerateSchema[classificationOutput]()

const classificationPromptFmt = `You are a classifier that analyzes software engineering user questions about a github code repository.
Classify each question into exactly one of these categories: GENERAL, FILE, FUNCTION&CLASS, FOLLOWUP.
Return your response in the following JSON format:
{ "label": "<CATEGORY_LABEL>" }
Here are some examples:
---
Question: What arguments does the process_data method take?
{ "label": "FUNCTION&CLASS" }
---
Question: Yes, please explain more about that.
{ "label": "FOLLOWUP" }
---
Question: What does the UserManager class handle?
{ "label": "FUNCTION&CLASS" }
---
Question: Could you summarize what you just said?
{ "label": "FOLLOWUP" }
---
Question: How do I install the dependencies for this repo?
{ "label": "GENERAL" }
---
Question: What is inside the README.md file?
{ "label": "FILE" }
---
Question: Okay, and what about authentication?
{ "label": "FOLLOWUP" }
---
Question: How can I contribute to this repository?
{ "label": "GENERAL" }
---
Question: Describe the contents of config.yaml
{ "label": "FILE" }
---
Question: What does the file utils.py do?
{ "label": "FILE" }
---
Question: Thanks, that makes sense. I got that.
{ "label": "FOLLOWUP" }
---
Question: What are the main goals of this repository?
{ "label": "GENERAL" }
---
Question: Who maintains this project?
{ "label": "GENERAL" }
---
Question: Can you explain how the authenticate_user function works?
{ "label": "FUNCTION&CLASS" }
---
Question: Is there a license file in this repo?
{ "label": "FILE" }
---
Question: What is the purpose of the class ConfigLoader?
{ "label": "FUNCTION&CLASS" }
---
Now classify the following question:
Question: %s`

// Classify labels the raw question text, with no history or context. It
// fails closed: a backing-model failure or an out-of-enum label yields a
// ClassificationError.
func (e *Engine) Classify(ctx context.Context, query string) (Label, error) {
	var out classificationOutput
	prompt := fmt.Sprintf(classificationPromptFmt, query)
	if err := e.Selector.CompleteStructured(ctx, prompt, "QuestionClassification", classificationSchema, &out); err != nil {
		return "", &ClassificationError{Err: err}
	}
	switch Label(out.Label) {
	case LabelGeneral, LabelFile, LabelFunctionOrClass, LabelFollowUp:
		return Label(out.Label), nil
	}
	return "", &ClassificationError{Err: fmt.Errorf("unknown label %q", out.Label)}
}
