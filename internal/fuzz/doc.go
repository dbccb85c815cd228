
// Package fuzztests houses Go fuzz harnesses for the reader pipeline
// (source -> scanner -> classifier -> list assembler). They guard against
// panics, hangs and malformed trees on arbitrary input.
//
// Назначение: загружать байты в FileSet и прогонять их через сканер и ридер,
// проверяя инварианты testkit на успешных чтениях.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/scanner, internal/reader,
// internal/testkit.

package fuzztests
