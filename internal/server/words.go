package server

import "math/rand/v2"

// Static vocabulary for turn word batches. Sampling guarantees no duplicate
// within one batch; repeats across turns are possible.
var vocabulary = []string{
	"Apple", "Banana", "Cherry", "Date", "Elderberry", "Fig", "Grape", "Honeydew",
	"Ice", "Jackfruit", "Kiwi", "Lemon", "Mango", "Nectarine", "Orange", "Papaya",
	"Quince", "Raspberry", "Strawberry", "Tangerine", "Ugli", "Vanilla", "Watermelon",
	"Xigua", "Yam", "Zucchini", "Car", "Bus", "Train", "Plane", "Bike", "Ship", "Boat",
}

func sampleWords(count int) []string {
	if count > len(vocabulary) {
		count = len(vocabulary)
	}
	words := make([]string, 0, count)
	for _, index := range rand.Perm(len(vocabulary))[:count] {
		words = append(words, vocabulary[index])
	}
	return words
}
