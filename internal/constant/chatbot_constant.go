package constant

const (
	// ChatbotInitialMessage greets users when the assistant panel opens.
	ChatbotInitialMessage = "Sbeh el khis, chnouwa najem n3awnek el lioum 😊"
)
