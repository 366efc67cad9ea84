package agent

import (
	"encoding/json"
	"fmt"
	"strings"

	"codeberg.org/lessonplanner/server/internal/lesson"
	"codeberg.org/lessonplanner/server/internal/llm"
)

const defaultImageMIMEType = "image/jpeg"

const systemPrompt = `You are a professional teacher's assistant that outputs only valid, structured JSON.
Never include prose, markdown, or commentary outside the JSON object.`

// fixed output contract shared by generation and refinement
const schemaContract = `{
  "lesson_plan": {
    "objectives": ["string"],
    "materials": ["string"],
    "activities": ["string"],
    "assessment": "string"
  },
  "worksheet": {
    "instructions": "string",
    "items": [
      {"type": "multiple_choice", "question": "string", "options": ["string", "string", "string", "string"], "answer": "string", "explanation": "string"},
      {"type": "fill_blank", "question": "string", "answer": "string", "explanation": "string"},
      {"type": "short_answer", "question": "string", "answer": "string", "explanation": "string"}
    ]
  }
}`

// builds the model request for either mode
func Build(req GenerationRequest) (llm.TextGenerationRequest, error) {
	switch req.Mode {
	case ModeGenerate:
		return BuildGenerate(req), nil
	case ModeRefine:
		return BuildRefine(req)
	default:
		return llm.TextGenerationRequest{}, fmt.Errorf("unknown generation mode: %q", req.Mode)
	}
}

func BuildGenerate(req GenerationRequest) llm.TextGenerationRequest {
	var builder strings.Builder

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("LESSON PARAMETERS\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(fmt.Sprintf("Grade Level: %s\n", req.Grade))
	builder.WriteString(fmt.Sprintf("Topic: %s\n\n", req.Topic))

	if req.Image != nil {
		builder.WriteString("═══════════════════════════════════════════════════════════\n")
		builder.WriteString("SOURCE MATERIAL\n")
		builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
		builder.WriteString("The attached image is source material provided by the teacher. ")
		builder.WriteString("Extract its facts, vocabulary and examples, and build the lesson and worksheet around them.\n\n")
	}

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("INSTRUCTIONS\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(getGenerateInstructions(req.Grade))

	if lesson.IsMathTopic(req.Topic) {
		builder.WriteString(getMathInstructions())
	}

	builder.WriteString("\n")
	builder.WriteString(getOutputContract())

	msg := llm.Message{
		Role:    "user",
		Content: builder.String(),
	}

	if req.Image != nil {
		msg.Images = []llm.Image{*req.Image}
	}

	return llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages:     []llm.Message{msg},
		JSONMode:     true,
	}
}

func BuildRefine(req GenerationRequest) (llm.TextGenerationRequest, error) {
	if req.Prior == nil {
		return llm.TextGenerationRequest{}, ErrMissingPriorArtifact
	}

	current, err := json.MarshalIndent(req.Prior, "", "  ")
	if err != nil {
		return llm.TextGenerationRequest{}, fmt.Errorf("failed to encode prior artifact: %w", err)
	}

	var builder strings.Builder

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("CURRENT LESSON\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(fmt.Sprintf("Grade Level: %s\n", req.Grade))
	builder.WriteString(fmt.Sprintf("Topic: %s\n\n", req.Topic))
	builder.Write(current)
	builder.WriteString("\n\n")

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("REQUESTED CHANGES\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(strings.TrimSpace(req.Instruction))
	builder.WriteString("\n\n")

	builder.WriteString("═══════════════════════════════════════════════════════════\n")
	builder.WriteString("INSTRUCTIONS\n")
	builder.WriteString("═══════════════════════════════════════════════════════════\n\n")
	builder.WriteString(`Apply the requested changes to the current lesson and return the complete updated lesson.
	Keep every part the teacher did not ask to change as it is.
	The result must use the identical schema as the current lesson.
`)
	builder.WriteString("\n")
	builder.WriteString(getOutputContract())

	return llm.TextGenerationRequest{
		SystemPrompt: systemPrompt,
		Messages: []llm.Message{{
			Role:    "user",
			Content: builder.String(),
		}},
		JSONMode: true,
	}, nil
}

func getGenerateInstructions(grade string) string {
	return fmt.Sprintf(`You are an expert curriculum designer. Generate a classroom-ready lesson plan and a student worksheet.

	Adapt vocabulary, pedagogical depth, and task complexity to the %s level.

	Educational requirements:
	- Objectives: clear, measurable goals using Bloom's Taxonomy verbs appropriate for the grade
	- Materials: the physical and digital resources needed
	- Activities: an instructional sequence (introduction, guided practice, independent practice, closing), each prefixed with a time estimate such as [10 min]
	- Assessment: how the teacher checks that the objectives were met
	- Worksheet: exactly 3 multiple_choice, 3 fill_blank and 3 short_answer items, each with its answer
	- Multiple choice items have exactly 4 options and the answer must be one of them
	- Content must be factually accurate and safe for a classroom
`, grade)
}

func getMathInstructions() string {
	return `
	This is a math topic:
	- Frame activities around step-by-step problem solving
	- Worksheet problems should require working through the steps, not recalling facts
	- Explanations should show the steps that lead to each answer
`
}

func getOutputContract() string {
	return "Output ONLY a single JSON object matching this schema, with no preamble:\n\n" + schemaContract + "\n"
}

// splits an optional "data:<mime>;base64," prefix from base64 image data
func ParseDataURI(data string) llm.Image {
	data = strings.TrimSpace(data)

	if !strings.HasPrefix(data, "data:") {
		return llm.Image{MIMEType: defaultImageMIMEType, Data: data}
	}

	header, payload, found := strings.Cut(data, ",")
	if !found {
		return llm.Image{MIMEType: defaultImageMIMEType, Data: data}
	}

	mimeType := strings.TrimPrefix(header, "data:")
	mimeType, _, _ = strings.Cut(mimeType, ";")

	if mimeType == "" {
		mimeType = defaultImageMIMEType
	}

	return llm.Image{MIMEType: mimeType, Data: payload}
}
