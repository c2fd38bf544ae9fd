package quizgen

import "strings"

// fallbackBank holds the built-in questions served when generation is
// unavailable. Keys are lower-case subject names.
var fallbackBank = map[string][]Question{
	"mathematics": {
		{Content: "What is 2 + 2?", Options: []string{"3", "4", "5", "6"}, CorrectAnswer: "4", Explanation: "Basic addition: 2 + 2 = 4"},
		{Content: "What is the square root of 16?", Options: []string{"2", "4", "6", "8"}, CorrectAnswer: "4", Explanation: "4 × 4 = 16, so the square root of 16 is 4"},
		{Content: "What is 10 × 5?", Options: []string{"25", "50", "75", "100"}, CorrectAnswer: "50", Explanation: "Multiplication: 10 × 5 = 50"},
		{Content: "What is 100 ÷ 4?", Options: []string{"20", "25", "30", "40"}, CorrectAnswer: "25", Explanation: "100 divided by 4 equals 25"},
		{Content: "What is the value of π (pi) to two decimal places?", Options: []string{"3.12", "3.14", "3.16", "3.18"}, CorrectAnswer: "3.14", Explanation: "π is approximately 3.14159..."},
	},
	"physics": {
		{Content: "What is the SI unit of force?", Options: []string{"Newton", "Joule", "Watt", "Pascal"}, CorrectAnswer: "Newton", Explanation: "Force is measured in Newtons (N)"},
		{Content: "What is the acceleration due to gravity on Earth?", Options: []string{"9.8 m/s²", "10 m/s²", "8.9 m/s²", "11 m/s²"}, CorrectAnswer: "9.8 m/s²", Explanation: "Standard gravity on Earth is 9.8 m/s²"},
		{Content: "What is the speed of light in a vacuum?", Options: []string{"300,000 km/s", "299,792 km/s", "300,000 m/s", "299,792 m/s"}, CorrectAnswer: "299,792 km/s", Explanation: "The speed of light in a vacuum is approximately 299,792 kilometers per second"},
		{Content: "What is the first law of thermodynamics?", Options: []string{"Energy cannot be created or destroyed", "Entropy always increases", "Heat flows from hot to cold", "Pressure and volume are inversely proportional"}, CorrectAnswer: "Energy cannot be created or destroyed", Explanation: "The first law states that energy is conserved in a closed system"},
		{Content: "What is the unit of electric current?", Options: []string{"Volt", "Ampere", "Ohm", "Watt"}, CorrectAnswer: "Ampere", Explanation: "Electric current is measured in amperes (A)"},
	},
	"chemistry": {
		{Content: "What is the chemical symbol for water?", Options: []string{"H2O", "CO2", "O2", "H2"}, CorrectAnswer: "H2O", Explanation: "Water is composed of two hydrogen atoms and one oxygen atom"},
		{Content: "What is the pH of pure water?", Options: []string{"5", "6", "7", "8"}, CorrectAnswer: "7", Explanation: "Pure water is neutral with a pH of 7"},
		{Content: "What is the atomic number of carbon?", Options: []string{"4", "6", "8", "12"}, CorrectAnswer: "6", Explanation: "Carbon has 6 protons in its nucleus"},
		{Content: "What is the most abundant gas in Earth's atmosphere?", Options: []string{"Oxygen", "Carbon Dioxide", "Nitrogen", "Argon"}, CorrectAnswer: "Nitrogen", Explanation: "Nitrogen makes up about 78% of Earth's atmosphere"},
		{Content: "What is the process of a solid turning directly into a gas called?", Options: []string{"Evaporation", "Sublimation", "Condensation", "Deposition"}, CorrectAnswer: "Sublimation", Explanation: "Sublimation is the phase transition from solid to gas"},
	},
	"biology": {
		{Content: "What is the powerhouse of the cell?", Options: []string{"Nucleus", "Mitochondria", "Ribosome", "Golgi Apparatus"}, CorrectAnswer: "Mitochondria", Explanation: "Mitochondria produce energy for the cell"},
		{Content: "What is the process by which plants make food?", Options: []string{"Respiration", "Photosynthesis", "Transpiration", "Digestion"}, CorrectAnswer: "Photosynthesis", Explanation: "Plants use sunlight to convert carbon dioxide and water into glucose"},
		{Content: "What is the basic unit of life?", Options: []string{"Atom", "Molecule", "Cell", "Tissue"}, CorrectAnswer: "Cell", Explanation: "All living organisms are made up of cells"},
		{Content: "What is the largest organ in the human body?", Options: []string{"Liver", "Brain", "Skin", "Heart"}, CorrectAnswer: "Skin", Explanation: "The skin is the largest organ, covering the entire body"},
		{Content: "What is the process of cell division called?", Options: []string{"Meiosis", "Mitosis", "Fission", "Budding"}, CorrectAnswer: "Mitosis", Explanation: "Mitosis is the process of cell division in somatic cells"},
	},
	"science": {
		{Content: "What is the chemical symbol for water?", Options: []string{"H2O", "CO2", "O2", "NaCl"}, CorrectAnswer: "H2O", Explanation: "Water is composed of hydrogen and oxygen with the formula H2O"},
		{Content: "What is the force that pulls objects towards Earth?", Options: []string{"Magnetism", "Electricity", "Gravity", "Friction"}, CorrectAnswer: "Gravity", Explanation: "Gravity is the force that attracts objects with mass towards each other"},
		{Content: "Which planet is known as the Red Planet?", Options: []string{"Earth", "Mars", "Venus", "Jupiter"}, CorrectAnswer: "Mars", Explanation: "Mars appears reddish due to iron oxide (rust) on its surface"},
	},
}

// defaultFallback is served for subjects without a dedicated bank.
var defaultFallback = []Question{
	{Content: "Which of these is NOT a programming language?", Options: []string{"Python", "Java", "HTML", "Banana"}, CorrectAnswer: "Banana", Explanation: "Banana is a fruit, not a programming language"},
	{Content: "What does CPU stand for?", Options: []string{"Central Processing Unit", "Computer Personal Unit", "Central Power Usage", "Computer Processing Utility"}, CorrectAnswer: "Central Processing Unit", Explanation: "CPU stands for Central Processing Unit, the brain of a computer"},
	{Content: "Which of these is a search engine?", Options: []string{"Google", "Facebook", "Twitter", "Instagram"}, CorrectAnswer: "Google", Explanation: "Google is a search engine, while the others are social media platforms"},
}

// FallbackQuestions returns n questions from the built-in bank for subject,
// cycling through the bank when n exceeds its size. Subject matching is
// case-insensitive; unknown subjects get a general-knowledge set.
func FallbackQuestions(subject string, n int) []Question {
	bank, ok := fallbackBank[strings.ToLower(strings.TrimSpace(subject))]
	if !ok {
		bank = defaultFallback
	}
	out := make([]Question, 0, n)
	for i := 0; i < n; i++ {
		q := bank[i%len(bank)]
		q.Options = append([]string(nil), q.Options...)
		out = append(out, q)
	}
	return out
}

// HasFallback reports whether subject has a dedicated bank.
func HasFallback(subject string) bool {
	_, ok := fallbackBank[strings.ToLower(strings.TrimSpace(subject))]
	return ok
}
