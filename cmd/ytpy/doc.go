// Command ytpy downloads YouTube video transcripts as clean text files.
package main
