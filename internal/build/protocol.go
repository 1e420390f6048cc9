// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package build

import (
	"strings"

	"github.com/pdiddy/schema-builder/pkg/types"
)

// Protocols returns the primary and alternate protocol for a vocabulary
// URI. An https vocabulary is published primarily over https.
func Protocols(vocabURI string) (protocol, alt string) {
	if strings.HasPrefix(vocabURI, "https") {
		return "https", "http"
	}
	return "http", "https"
}

// ProtocolSwap rewrites protocol://host and protocol://<layer>.host to the
// alternate protocol for every extension layer.
func ProtocolSwap(content, protocol, alt, host string) string {
	pairs := []string{protocol + "://" + host, alt + "://" + host}
	for _, layer := range types.Layers {
		pairs = append(pairs,
			protocol+"://"+layer+"."+host,
			alt+"://"+layer+"."+host)
	}
	// No pattern is a prefix of another, so one pass matches sequential
	// replacement.
	return strings.NewReplacer(pairs...).Replace(content)
}
