/*
Package chaingen generates synthetic Python packages made of a linear chain of modules,
each importing the next, for studying interpreter behavior under deep import chains
(stack depth, recursion limits).

# Concept

A package is fully determined by three values: the project name, the chain length and
the recursion limit baked into its entry script. Generating is destructive: the previous
package of the same name is removed first, so regenerating always yields exactly
chainLength+2 files.

	src/<project>/__init__.py     empty marker
	src/<project>/main.py         sets sys.setrecursionlimit and imports mod_001
	src/<project>/mod_001.py      from . import mod_002
	...
	src/<project>/mod_NNN.py      print("Got to the end of the import chain.")

# Usage

	package main

	import (
		"context"
		"log"

		"github.com/aretw0/chaingen"
		"github.com/aretw0/chaingen/pkg/domain"
	)

	func main() {
		gen := chaingen.New("src")
		res, err := gen.Generate(context.Background(), domain.Request{
			ProjectName:    "demo",
			ChainLength:    150,
			RecursionLimit: 1000,
		})
		if err != nil {
			log.Fatal(err)
		}
		log.Println("generated", res.PackagePath)
	}
*/
package chaingen
