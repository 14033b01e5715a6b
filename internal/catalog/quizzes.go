package catalog

import "emberarena/internal/models"

// SeededQuizzes returns the static list of trials, one per difficulty tier
func SeededQuizzes() []models.Quiz {
	return []models.Quiz{
		{
			ID: "history-basics", Title: "Ancient Civilizations", Category: "History", Difficulty: "easy",
			Reward: 20, MinDurationSeconds: 30,
			Questions: []models.Question{
				{ID: "q1", Prompt: "Which ancient wonder was located in Egypt?", Choices: []string{"Hanging Gardens of Babylon", "Great Pyramid of Giza", "Colossus of Rhodes", "Lighthouse of Alexandria"}, CorrectAnswer: 1, Explanation: "The Great Pyramid of Giza is the oldest and only remaining ancient wonder."},
				{ID: "q2", Prompt: "Who was the first emperor of Rome?", Choices: []string{"Julius Caesar", "Augustus", "Nero", "Constantine"}, CorrectAnswer: 1, Explanation: "Augustus (Octavian) became the first Roman Emperor in 27 BCE."},
				{ID: "q3", Prompt: "Which civilization built Machu Picchu?", Choices: []string{"Aztec", "Maya", "Inca", "Olmec"}, CorrectAnswer: 2, Explanation: "The Inca Empire built Machu Picchu in the 15th century in Peru."},
				{ID: "q4", Prompt: "What year did the Roman Empire fall?", Choices: []string{"476 CE", "410 CE", "500 CE", "395 CE"}, CorrectAnswer: 0, Explanation: "The Western Roman Empire fell in 476 CE when Romulus Augustulus was deposed."},
				{ID: "q5", Prompt: "Which ancient Greek philosopher taught Alexander the Great?", Choices: []string{"Socrates", "Plato", "Aristotle", "Pythagoras"}, CorrectAnswer: 2, Explanation: "Aristotle tutored Alexander the Great during his youth."},
			},
		},
		{
			ID: "science-medium", Title: "Scientific Discoveries", Category: "Science", Difficulty: "medium",
			Reward: 40, MinDurationSeconds: 30,
			Questions: []models.Question{
				{ID: "q1", Prompt: "What is the speed of light in a vacuum?", Choices: []string{"299,792 km/s", "300,000 km/s", "250,000 km/s", "350,000 km/s"}, CorrectAnswer: 0, Explanation: "The speed of light in a vacuum is exactly 299,792,458 meters per second."},
				{ID: "q2", Prompt: "Who discovered penicillin?", Choices: []string{"Louis Pasteur", "Alexander Fleming", "Marie Curie", "Jonas Salk"}, CorrectAnswer: 1, Explanation: "Alexander Fleming discovered penicillin in 1928."},
				{ID: "q3", Prompt: "What is the powerhouse of the cell?", Choices: []string{"Nucleus", "Ribosome", "Mitochondria", "Chloroplast"}, CorrectAnswer: 2, Explanation: "Mitochondria produce ATP, the energy currency of cells."},
				{ID: "q4", Prompt: "What is the chemical symbol for gold?", Choices: []string{"Go", "Gd", "Au", "Ag"}, CorrectAnswer: 2, Explanation: "Au comes from the Latin word 'aurum' meaning gold."},
				{ID: "q5", Prompt: "How many bones are in the adult human body?", Choices: []string{"186", "206", "226", "246"}, CorrectAnswer: 1, Explanation: "The adult human skeleton has 206 bones."},
			},
		},
		{
			ID: "literature-hard", Title: "Classic Literature", Category: "Literature", Difficulty: "hard",
			Reward: 60, MinDurationSeconds: 30,
			Questions: []models.Question{
				{ID: "q1", Prompt: "Who wrote 'One Hundred Years of Solitude'?", Choices: []string{"Jorge Luis Borges", "Gabriel García Márquez", "Pablo Neruda", "Octavio Paz"}, CorrectAnswer: 1, Explanation: "Gabriel García Márquez wrote this masterpiece of magical realism in 1967."},
				{ID: "q2", Prompt: "In which year was '1984' by George Orwell published?", Choices: []string{"1948", "1949", "1950", "1984"}, CorrectAnswer: 1, Explanation: "George Orwell published '1984' in 1949."},
				{ID: "q3", Prompt: "What is the first line of 'Pride and Prejudice'?", Choices: []string{"Call me Ishmael", "It was the best of times", "It is a truth universally acknowledged", "Happy families are all alike"}, CorrectAnswer: 2, Explanation: "Jane Austen's famous opening: 'It is a truth universally acknowledged, that a single man in possession of a good fortune, must be in want of a wife.'"},
				{ID: "q4", Prompt: "Who wrote 'The Brothers Karamazov'?", Choices: []string{"Leo Tolstoy", "Fyodor Dostoevsky", "Anton Chekhov", "Ivan Turgenev"}, CorrectAnswer: 1, Explanation: "Fyodor Dostoevsky wrote this philosophical novel in 1880."},
				{ID: "q5", Prompt: "What is the name of the whale in 'Moby-Dick'?", Choices: []string{"Moby", "Dick", "Moby-Dick", "The White Whale"}, CorrectAnswer: 2, Explanation: "The whale's name is Moby-Dick, a white sperm whale."},
			},
		},
		{
			ID: "mythology-legendary", Title: "Mythological Legends", Category: "Mythology", Difficulty: "legendary",
			Reward: 100, MinDurationSeconds: 30,
			Questions: []models.Question{
				{ID: "q1", Prompt: "In Norse mythology, what is the name of Odin's eight-legged horse?", Choices: []string{"Fenrir", "Sleipnir", "Jormungandr", "Huginn"}, CorrectAnswer: 1, Explanation: "Sleipnir is Odin's magical eight-legged horse, the best of all horses."},
				{ID: "q2", Prompt: "Who was the Greek goddess of the rainbow?", Choices: []string{"Iris", "Hera", "Artemis", "Athena"}, CorrectAnswer: 0, Explanation: "Iris was the goddess of the rainbow and messenger of the gods."},
				{ID: "q3", Prompt: "In Egyptian mythology, who weighed the hearts of the dead?", Choices: []string{"Ra", "Osiris", "Anubis", "Thoth"}, CorrectAnswer: 2, Explanation: "Anubis weighed hearts against the feather of Ma'at in the afterlife judgment."},
				{ID: "q4", Prompt: "What was the name of King Arthur's sword?", Choices: []string{"Excalibur", "Caliburn", "Clarent", "Carnwennan"}, CorrectAnswer: 0, Explanation: "Excalibur was the legendary sword of King Arthur."},
				{ID: "q5", Prompt: "In Hindu mythology, who is the destroyer god in the Trimurti?", Choices: []string{"Brahma", "Vishnu", "Shiva", "Indra"}, CorrectAnswer: 2, Explanation: "Shiva is the destroyer and transformer in the Hindu Trimurti."},
			},
		},
	}
}
