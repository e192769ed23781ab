// Package translate provides the translation client used for question
// pre-translation and response back-translation, plus the validator rule
// that fills the back-translated field of a provider result.
//
// Translation failure never aborts the pipeline: the validator substitutes
// a fixed sentinel instead of propagating the error.
package translate
