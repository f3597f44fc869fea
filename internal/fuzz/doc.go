// Package fuzztests houses Go fuzz harnesses for the text-facing front of
// mocksmith: the type/signature parser and the definition file loader, plus
// the erasure engine fed by parsed types. The goal is to guard against
// panics and hangs on arbitrary input.
//
// Назначение: прогонять произвольные байты через typeparse, defs и erasure.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
