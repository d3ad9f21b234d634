package prompt

// Decoration whitelist for generated posts. Emojis are banned outright;
// these plain typographic symbols are the only decoration the model may use.

// ListMarkers are the symbols offered for list formatting, in preference
// order.
var ListMarkers = []string{"•", "→", "➤", "▸", "▪", "★", "✧", "✦"}

// AllowedSymbols is every decoration symbol a post may contain: bullets,
// arrows, dividers and decorative stars.
const AllowedSymbols = "•→➤➜▶▸▪▫◦○◇◆★☆✧✦✩✪✫✬✭✮✯✰" +
	"←↑↓⇒⇐⇑⇓➨➩➪➫➬➭➮➯➱➲➳➴➵➶➷➸➹➺➻➼➽➾" +
	"─━│┃┄┅┆┇┈┉┊┋┌┐└┘├┤┬┴┼" +
	"♡♥♦♣♠"

// ListMarker returns a marker for the given list index, cycling through
// the marker set.
func ListMarker(index int) string {
	if index < 0 {
		index = -index
	}
	return ListMarkers[index%len(ListMarkers)]
}
