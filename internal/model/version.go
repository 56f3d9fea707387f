// Package model holds the data types shared by the ccjpost packages.
package model

// Version of the ccjpost binary.
const Version = "1.8.0"
