package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/quater/fatnav"
	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
)

// main mounts the given FAT32 image and drops into a small interactive
// shell: ls, cd, pwd, cat, info, exit.
func main() {
	log := logrus.New()

	if len(os.Args) < 2 {
		log.Fatal("please provide a volume image")
	}

	image, err := afero.NewOsFs().Open(os.Args[1])
	if err != nil {
		log.WithError(err).Fatal("could not open the image")
	}
	defer image.Close()

	volume, err := fatnav.Mount(fatnav.NewSeekerSource(image))
	if err != nil {
		log.WithError(err).Fatal("could not mount the volume")
	}

	log.WithField("label", volume.Label()).Info("volume mounted")

	dir := volume.Root()
	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("%s> ", prompt(&dir))
	for scanner.Scan() {
		command, argument := splitCommand(scanner.Text())

		switch command {
		case "":
		case "exit", "quit":
			return
		case "pwd":
			fmt.Println(prompt(&dir))
		case "info":
			geo := volume.Geometry()
			fmt.Printf("label=%q root=%d data=%d fats=%d fatsize=%d\n",
				volume.Label(), geo.RootCluster, geo.FirstDataSector,
				geo.NumberOfFATs, geo.FATSize)
		case "ls":
			flags := fatnav.ListLongNames | fatnav.ListType | fatnav.ListSize
			if argument == "-a" {
				flags = fatnav.ListAll
			}
			listDirectory(log, volume, &dir, flags)
		case "cd":
			if err := volume.Descend(&dir, argument); err != nil {
				log.WithError(err).Error("cd failed")
			}
		case "cat":
			if err := volume.StreamFile(&dir, argument, os.Stdout); err != nil {
				log.WithError(err).Error("cat failed")
			}
		default:
			log.WithField("command", command).Warn("unknown command")
		}

		fmt.Printf("%s> ", prompt(&dir))
	}
}

func listDirectory(log *logrus.Logger, volume *fatnav.Volume, dir *fatnav.DirectoryCursor, flags fatnav.ListFlags) {
	entries, err := volume.List(dir, flags)
	if err != nil {
		if errors.Is(err, fatnav.ErrCorruptEntry) {
			log.Error("directory is corrupt")
			return
		}
		log.WithError(err).Error("ls failed")
		return
	}

	for _, entry := range entries {
		info := entry.FileInfo()
		name := entry.Name()
		if flags&fatnav.ListShortNames != 0 && entry.LongName != "" {
			name = fmt.Sprintf("%s (%s)", name, entry.ShortName)
		}
		fmt.Printf("%s %10d %s\n", info.Mode(), info.Size(), name)
	}
}

func prompt(dir *fatnav.DirectoryCursor) string {
	if dir.LongPath == "" {
		return dir.LongName
	}
	return dir.LongPath + "/" + dir.LongName
}

func splitCommand(line string) (command, argument string) {
	fields := strings.SplitN(strings.TrimSpace(line), " ", 2)
	command = fields[0]
	if len(fields) > 1 {
		argument = strings.TrimSpace(fields[1])
	}
	return command, argument
}
