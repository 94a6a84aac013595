// Package egp develops and evolves genomes for evolutionary genetic programming.
//
// A genome (Chromosome) holds an output component and, per group, a sequence of
// regular components. Every component carries binding sites: vectors describing
// what it wants to bind to. Express turns a chromosome into a directed graph
// (Phenotype) by matching each site against the profiles of the available
// components with a nearest-neighbour search, starting from the output and
// falling back on the catalog's shared terminals. Mutate and Recombine vary
// chromosomes between generations.
//
// The library lives in the egp subpackage. Basic usage:
//
//	config, err := egp.LoadConfig("path/to/config")
//	if err != nil {
//		log.Fatalf("Error loading config: %v", err)
//	}
//
//	src := egp.NewSource(config.EGP.Seed)
//	catalog, err := egp.LoadCatalogFile(config.EGP.CatalogFile, src)
//	if err != nil {
//		log.Fatalf("Error loading catalog: %v", err)
//	}
//
//	chromosome, err := egp.NewChromosome(catalog, config.Chromosome.Size, src)
//	if err != nil {
//		log.Fatalf("Error creating chromosome: %v", err)
//	}
//
//	phenotype := egp.Express(catalog, chromosome)
//	fmt.Println(phenotype.DOT())
//
//	egp.Mutate(catalog, chromosome, src)
//	child, _ := egp.Recombine(catalog, config.Chromosome.NTransfer, chromosome, other, src)
//
// Population wraps these pieces for a whole generation: it develops every
// individual in parallel and breeds children, while selection stays with the
// caller. See examples/arith for a complete run.
package egp
