package meta

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/modeltrust/mtrust/pkg/net"
	"github.com/modeltrust/mtrust/pkg/score"
)

// weightFileSuffixes identify model weight artifacts among repo files.
var weightFileSuffixes = []string{
	".bin", ".safetensors", ".pt", ".pth", ".h5", ".ckpt", ".onnx", ".gguf",
}

// hubModel is the subset of the Hub model API response the metrics need.
type hubModel struct {
	ID        string   `json:"id"`
	Downloads int64    `json:"downloads"`
	Likes     int64    `json:"likes"`
	Tags      []string `json:"tags"`
	CardData  struct {
		License  string   `json:"license"`
		Datasets []string `json:"datasets"`
	} `json:"cardData"`
	Siblings []struct {
		Rfilename string `json:"rfilename"`
		Size      *int64 `json:"size"`
	} `json:"siblings"`
}

// fetchHub populates md from the Hugging Face model API and the raw model
// card. Partial population on failure, never an error.
func (p *Provider) fetchHub(ctx context.Context, url string, md score.Metadata) {
	id := hubModelID(url)
	if id == "" {
		slog.Debug("could not extract model id", "url", url)
		return
	}

	var m hubModel
	apiURL := fmt.Sprintf("%s/api/models/%s", p.hubBaseURL, id)
	if err := net.GetJSON(ctx, apiURL, p.hubToken, &m); err != nil {
		slog.Info("hub model fetch failed", "model", id, "error", err)
	} else {
		md[score.KeyDatasetDownloads] = m.Downloads

		if lic := hubLicense(&m); lic != "" {
			md[score.KeyLicense] = lic
		}
		if len(m.CardData.Datasets) > 0 {
			md[score.KeyDatasetLink] = m.CardData.Datasets[0]
		}
		if total, known := weightsTotal(&m); known {
			md[score.KeyWeightsBytes] = total
		}
	}

	cardURL := fmt.Sprintf("%s/%s/raw/main/README.md", p.hubBaseURL, id)
	card, err := net.GetText(ctx, cardURL, p.hubToken)
	if err != nil {
		slog.Info("model card fetch failed", "model", id, "error", err)
		return
	}
	if card != "" {
		md[score.KeyReadme] = card
	}
}

// hubModelID extracts "owner/model" from a Hub URL, skipping the browsing
// boilerplate segments.
func hubModelID(url string) string {
	_, tail, ok := strings.Cut(url, modelHubDomain+"/")
	if !ok {
		return ""
	}

	parts := make([]string, 0, 2)
	for _, seg := range strings.Split(tail, "/") {
		if seg == "" || seg == "tree" || seg == "main" || seg == "blob" {
			continue
		}
		parts = append(parts, seg)
		if len(parts) == 2 {
			break
		}
	}
	return strings.Join(parts, "/")
}

// hubLicense prefers the card license and falls back to license tags.
func hubLicense(m *hubModel) string {
	if m.CardData.License != "" {
		return m.CardData.License
	}
	for _, t := range m.Tags {
		if lic, ok := strings.CutPrefix(t, "license:"); ok {
			return lic
		}
	}
	return ""
}

// weightsTotal sums the sizes of weight artifacts. Size is only known when
// the API reports sizes for at least one weight file.
func weightsTotal(m *hubModel) (int64, bool) {
	var total int64
	known := false
	for _, s := range m.Siblings {
		if !isWeightFile(s.Rfilename) || s.Size == nil {
			continue
		}
		total += *s.Size
		known = true
	}
	return total, known
}

func isWeightFile(name string) bool {
	lower := strings.ToLower(name)
	for _, suffix := range weightFileSuffixes {
		if strings.HasSuffix(lower, suffix) {
			return true
		}
	}
	return false
}
