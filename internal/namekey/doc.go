// Package namekey turns free-text company names into canonical comparison keys.
//
// Normalization upper-cases the name, folds accents through canonical
// decomposition, replaces punctuation with spaces, and drops tokens found in
// the legal-form vocabulary (SAS, SARL, LTD, GMBH, ...). The strict variant
// used for deduplication also drops generic corporate boilerplate (GROUP,
// HOLDING, FRANCE, ...) and then re-glues single-letter orphans produced by
// markup splitting ("S TILE" becomes "STILE").
//
// Keys are not injective: distinct entities may collide, and an empty key
// means the name carried no usable signal. Callers must never treat an empty
// key as a match target. Similarity scores two keys with a sequence-matching
// ratio and applies no acceptance threshold of its own.
//
// Every function here is pure and safe for concurrent use.
package namekey
