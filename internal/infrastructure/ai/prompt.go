package ai

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/jhoicas/syncdesk-api/internal/application/dto"
	"github.com/jhoicas/syncdesk-api/internal/domain/entity"
)

// systemPrompt define el rol del modelo y el formato de salida (común a ambos proveedores).
const systemPrompt = `You are an experienced music supervisor who evaluates songs for sync licensing
(film, TV, advertising, trailers, video games).
Return ONLY a valid JSON object (no markdown, no code fences) with this exact structure:
{
  "score": <integer 0-100, how well the song fits the project>,
  "suitable_for": ["<short scene or usage idea>", "..."],
  "reasoning": "<concise explanation, max 400 characters>",
  "confidence": <decimal between 0.0 and 1.0>
}

Rules:
- score: 80-100 strong fit, 50-79 workable, <50 poor fit.
- suitable_for: 1 to 5 concrete placements.
- confidence: 0.9-1.0 = complete song metadata, lower when mood, tempo or lyrics are missing.
- No text outside the JSON object.`

// suitabilityPayload JSON que esperamos recibir del modelo.
type suitabilityPayload struct {
	Score       float64  `json:"score"`
	SuitableFor []string `json:"suitable_for"`
	Reasoning   string   `json:"reasoning"`
	Confidence  float64  `json:"confidence"`
}

// jsonBlockRe extrae el primer objeto JSON del texto aunque el modelo lo envuelva en markdown.
// Captura desde el primer '{' hasta el último '}'.
var jsonBlockRe = regexp.MustCompile(`(?s)\{.*\}`)

const maxLyricsRunes = 1500

// songBrief arma el mensaje de usuario con los metadatos disponibles de la canción.
func songBrief(song *entity.Song, projectType, projectDescription string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Song: %s\n", song.Title)
	line := func(label, v string) {
		if strings.TrimSpace(v) != "" {
			fmt.Fprintf(&b, "%s: %s\n", label, v)
		}
	}
	line("Artist", song.Artist)
	line("Genre", song.Genre)
	line("Mood", song.Mood)
	if song.Tempo > 0 {
		fmt.Fprintf(&b, "Tempo: %d BPM\n", song.Tempo)
	}
	line("Key", song.Key)
	if song.Duration > 0 {
		fmt.Fprintf(&b, "Duration: %d:%02d\n", song.Duration/60, song.Duration%60)
	}
	if len(song.Tags) > 0 {
		line("Tags", strings.Join(song.Tags, ", "))
	}
	if lyrics := strings.TrimSpace(song.Lyrics); lyrics != "" {
		if r := []rune(lyrics); len(r) > maxLyricsRunes {
			lyrics = string(r[:maxLyricsRunes]) + "..."
		}
		line("Lyrics", lyrics)
	}
	fmt.Fprintf(&b, "\nProject type: %s\n", projectType)
	line("Project description", projectDescription)
	return b.String()
}

// toSuitabilityDTO fija score en [0, 100] y confidence en [0, 1].
func toSuitabilityDTO(p suitabilityPayload) *dto.SyncSuitabilityDTO {
	score := int(math.Round(p.Score))
	if score < 0 {
		score = 0
	} else if score > 100 {
		score = 100
	}
	confidence := p.Confidence
	if confidence < 0 {
		confidence = 0
	} else if confidence > 1 {
		confidence = 1
	}
	uses := make([]string, 0, len(p.SuitableFor))
	for _, u := range p.SuitableFor {
		if u = strings.TrimSpace(u); u != "" {
			uses = append(uses, u)
		}
	}
	return &dto.SyncSuitabilityDTO{
		Score:       score,
		SuitableFor: uses,
		Reasoning:   strings.TrimSpace(p.Reasoning),
		Confidence:  confidence,
	}
}

// extractJSON extrae el primer objeto JSON de un texto libre.
//  1. Elimina bloques de código markdown (```json … ``` o ``` … ```).
//  2. Si no empieza con '{', usa la regex para capturar el primer bloque { … }.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}
