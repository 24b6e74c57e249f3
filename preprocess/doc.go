// Package preprocess rewrites PDF files into alternative forms that a
// text-layer detector may read more reliably:
//
//   - normalize: validate and optimize, rebuilding the cross-reference table
//   - repair: read without validation and write a clean copy
//   - decrypt: remove encryption using the source password, if any
//
// Every rewrite goes to a fresh temporary directory removed by the cleanup
// func returned with it.
package preprocess
