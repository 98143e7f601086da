// Package prediction scores the likelihood that a parking spot will be
// vacant at a future booking time. It combines static catalog attributes,
// historical pattern tables learned from the dataset and a pre-trained
// classifier loaded from the model artifact bundle.
package prediction
