// Package models defines the domain entities shared by the catalog resolution engine.
//
// The central type is [Item], a closed tagged union over the four catalog kinds
// (track, artist, album, playlist) discriminated by [Kind]. Consumers switch on
// the discriminant rather than probing optional fields.
//
// All values here are created per query or per conversion batch and discarded
// once the caller consumes them; persistence belongs to the history store.
package models
