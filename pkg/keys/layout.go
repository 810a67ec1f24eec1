package keys

// row builder state used while declaring the default layout.
type layoutBuilder struct {
	row  int
	defs []Definition
}

func (b *layoutBuilder) next() { b.row++ }

// std adds a Standard key with en and ru glyph pairs.
func (b *layoutBuilder) std(code Code, en, enUp, ru, ruUp string) {
	b.defs = append(b.defs, Definition{
		Code:  code,
		Class: Standard,
		Size:  Small,
		Row:   b.row,
		Glyphs: map[Language]Pair{
			English: {Lower: en, Upper: enUp},
			Russian: {Lower: ru, Upper: ruUp},
		},
	})
}

func (b *layoutBuilder) fn(code Code, class Class, size Size, label string) {
	b.defs = append(b.defs, Definition{Code: code, Class: class, Size: size, Row: b.row, Label: label})
}

// defaultLayout is a Windows ANSI layout with English and Russian (ЙЦУКЕН)
// glyphs.
func defaultLayout() []Definition {
	b := &layoutBuilder{}

	b.std("Backquote", "`", "~", "ё", "Ё")
	b.std("Digit1", "1", "!", "1", "!")
	b.std("Digit2", "2", "@", "2", "\"")
	b.std("Digit3", "3", "#", "3", "№")
	b.std("Digit4", "4", "$", "4", ";")
	b.std("Digit5", "5", "%", "5", "%")
	b.std("Digit6", "6", "^", "6", ":")
	b.std("Digit7", "7", "&", "7", "?")
	b.std("Digit8", "8", "*", "8", "*")
	b.std("Digit9", "9", "(", "9", "(")
	b.std("Digit0", "0", ")", "0", ")")
	b.std("Minus", "-", "_", "-", "_")
	b.std("Equal", "=", "+", "=", "+")
	b.fn("Backspace", Backspace, Large, "Backspace")

	b.next()
	b.fn("Tab", Tab, Medium, "Tab")
	b.std("KeyQ", "q", "Q", "й", "Й")
	b.std("KeyW", "w", "W", "ц", "Ц")
	b.std("KeyE", "e", "E", "у", "У")
	b.std("KeyR", "r", "R", "к", "К")
	b.std("KeyT", "t", "T", "е", "Е")
	b.std("KeyY", "y", "Y", "н", "Н")
	b.std("KeyU", "u", "U", "г", "Г")
	b.std("KeyI", "i", "I", "ш", "Ш")
	b.std("KeyO", "o", "O", "щ", "Щ")
	b.std("KeyP", "p", "P", "з", "З")
	b.std("BracketLeft", "[", "{", "х", "Х")
	b.std("BracketRight", "]", "}", "ъ", "Ъ")
	b.std("Backslash", "\\", "|", "\\", "/")
	b.fn("Delete", Delete, Small, "Del")

	b.next()
	b.fn("CapsLock", CapsLock, Large, "CapsLock")
	b.std("KeyA", "a", "A", "ф", "Ф")
	b.std("KeyS", "s", "S", "ы", "Ы")
	b.std("KeyD", "d", "D", "в", "В")
	b.std("KeyF", "f", "F", "а", "А")
	b.std("KeyG", "g", "G", "п", "П")
	b.std("KeyH", "h", "H", "р", "Р")
	b.std("KeyJ", "j", "J", "о", "О")
	b.std("KeyK", "k", "K", "л", "Л")
	b.std("KeyL", "l", "L", "д", "Д")
	b.std("Semicolon", ";", ":", "ж", "Ж")
	b.std("Quote", "'", "\"", "э", "Э")
	b.fn("Enter", Enter, Large, "Enter ⏎")

	b.next()
	b.fn("ShiftLeft", Shift, Large, "Shift")
	b.std("KeyZ", "z", "Z", "я", "Я")
	b.std("KeyX", "x", "X", "ч", "Ч")
	b.std("KeyC", "c", "C", "с", "С")
	b.std("KeyV", "v", "V", "м", "М")
	b.std("KeyB", "b", "B", "и", "И")
	b.std("KeyN", "n", "N", "т", "Т")
	b.std("KeyM", "m", "M", "ь", "Ь")
	b.std("Comma", ",", "<", "б", "Б")
	b.std("Period", ".", ">", "ю", "Ю")
	b.std("Slash", "/", "?", ".", ",")
	b.fn("ArrowUp", Arrow, Small, "▲")
	b.fn("ShiftRight", Shift, Medium, "Shift")

	b.next()
	b.fn("ControlLeft", ControlLeft, Medium, "Ctrl")
	b.fn("AltLeft", AltLeft, Medium, "Alt")
	b.fn("Space", Space, Large, "Space")
	b.fn("ArrowLeft", Arrow, Small, "◄")
	b.fn("ArrowDown", Arrow, Small, "▼")
	b.fn("ArrowRight", Arrow, Small, "►")

	return b.defs
}
