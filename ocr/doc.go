// Package ocr provides resolve.Recognizer implementations.
//
//   - Command runs an external OCR program, such as tesseract.
//   - HTTP posts images to an OCR web service, such as a ddddocr API server.
//   - Template matches images against glyphs rendered from a reference
//     font, with no external engine at all.
package ocr
