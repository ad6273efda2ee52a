// Package services implements the core pipeline behind the driving
// ports: ingestion (load, normalise, chunk, embed, index, publish) and
// querying (hybrid retrieval, re-ranking, the confidence gate and
// answer assembly).
//
// Services depend only on driven ports and the snapshot holder; all
// backend choices are wiring.
package services
