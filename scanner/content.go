package scanner

import (
	"bytes"
	"context"
	"fmt"

	"vakta/config"
	"vakta/metadata"
)

const macroPayloadWeight = 10

// contentProbe is the informational technique family (text_content,
// code_content, image_content, video_content, audio_content). Probes
// enrich the report with type-appropriate properties and never score;
// scoring stays with the detection techniques.
type contentProbe struct {
	name string
	cfg  *config.Config
}

func (p *contentProbe) Name() string { return p.name }

func (p *contentProbe) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(p.name)

	mime := fc.MimeType()
	result.Data["mime_type"] = mime

	switch p.name {
	case "text_content", "code_content":
		content, err := fc.Content()
		if err != nil {
			return result.skipped(fmt.Sprintf("unreadable: %v", err)), nil
		}
		result.Data["bytes_sampled"] = len(content)
		result.Data["lines"] = bytes.Count(content, []byte{'\n'})
		if p.name == "code_content" && bytes.HasPrefix(content, []byte("#!")) {
			result.Data["interpreter_line"] = true
		}
	default:
		props := metadata.Extract(fc.Path(), mime, p.maxBytes())
		if len(props) > 0 {
			result.Data["properties"] = props
		}
	}
	return result, nil
}

func (p *contentProbe) maxBytes() int64 {
	if p.cfg != nil && p.cfg.MetadataMaxBytes > 0 {
		return p.cfg.MetadataMaxBytes
	}
	return 1 << 20
}

// documentProbe inspects document files. Property extraction is
// informational like the other probes, but an OOXML container carrying a
// VBA project is a scored signal.
type documentProbe struct {
	cfg *config.Config
}

func (p *documentProbe) Name() string { return "document_content" }

func (p *documentProbe) Analyze(ctx context.Context, fc *FileContext) (*TechResult, error) {
	result := newTechResult(p.Name())

	mime := fc.MimeType()
	result.Data["mime_type"] = mime
	maxBytes := int64(1 << 20)
	if p.cfg != nil && p.cfg.MetadataMaxBytes > 0 {
		maxBytes = p.cfg.MetadataMaxBytes
	}
	props := metadata.Extract(fc.Path(), mime, maxBytes)
	if len(props) > 0 {
		result.Data["properties"] = props
	}

	if found, part := metadata.MacroPayload(fc.Path()); found {
		result.Score = macroPayloadWeight
		result.Data["macro_payload"] = part
		result.addFinding(Finding{
			Engine:     "document_analysis",
			Type:       "macro_payload",
			Confidence: 60,
			Pattern:    part,
		})
	}
	return result, nil
}
