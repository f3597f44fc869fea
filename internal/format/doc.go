// Package format renders declaration trees produced by synthesis as source
// text.
//
// Назначение: единственная точка, где decl-деревья превращаются в текст.
// Не делает: разбора, проверки типов или IO.
// Зависимости: internal/decl, internal/typeexpr.
package format
