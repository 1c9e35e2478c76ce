package service

// offlineVersePool is the deterministic fallback used when both verse
// upstreams are unavailable. All KJV, public domain.
var offlineVersePool = []Verse{
	{Reference: "John 3:16", Text: "For God so loved the world, that he gave his only begotten Son, that whosoever believeth in him should not perish, but have everlasting life.", TranslationName: "KJV"},
	{Reference: "Psalm 23:1", Text: "The LORD is my shepherd; I shall not want.", TranslationName: "KJV"},
	{Reference: "Proverbs 3:5", Text: "Trust in the LORD with all thine heart; and lean not unto thine own understanding.", TranslationName: "KJV"},
	{Reference: "Proverbs 3:6", Text: "In all thy ways acknowledge him, and he shall direct thy paths.", TranslationName: "KJV"},
	{Reference: "Philippians 4:6", Text: "Be careful for nothing; but in every thing by prayer and supplication with thanksgiving let your requests be made known unto God.", TranslationName: "KJV"},
	{Reference: "Philippians 4:7", Text: "And the peace of God, which passeth all understanding, shall keep your hearts and minds through Christ Jesus.", TranslationName: "KJV"},
	{Reference: "Romans 8:28", Text: "And we know that all things work together for good to them that love God, to them who are the called according to his purpose.", TranslationName: "KJV"},
	{Reference: "Isaiah 41:10", Text: "Fear thou not; for I am with thee: be not dismayed; for I am thy God: I will strengthen thee; yea, I will help thee; yea, I will uphold thee with the right hand of my righteousness.", TranslationName: "KJV"},
	{Reference: "Matthew 11:28", Text: "Come unto me, all ye that labour and are heavy laden, and I will give you rest.", TranslationName: "KJV"},
	{Reference: "2 Corinthians 5:17", Text: "Therefore if any man be in Christ, he is a new creature: old things are passed away; behold, all things are become new.", TranslationName: "KJV"},
	{Reference: "Psalm 46:10", Text: "Be still, and know that I am God: I will be exalted among the heathen, I will be exalted in the earth.", TranslationName: "KJV"},
	{Reference: "Hebrews 11:1", Text: "Now faith is the substance of things hoped for, the evidence of things not seen.", TranslationName: "KJV"},
	{Reference: "James 1:5", Text: "If any of you lack wisdom, let him ask of God, that giveth to all men liberally, and upbraideth not; and it shall be given him.", TranslationName: "KJV"},
	{Reference: "1 Peter 5:7", Text: "Casting all your care upon him; for he careth for you.", TranslationName: "KJV"},
	{Reference: "Romans 5:8", Text: "But God commendeth his love toward us, in that, while we were yet sinners, Christ died for us.", TranslationName: "KJV"},
	{Reference: "John 14:6", Text: "Jesus saith unto him, I am the way, the truth, and the life: no man cometh unto the Father, but by me.", TranslationName: "KJV"},
	{Reference: "Joshua 1:9", Text: "Have not I commanded thee? Be strong and of a good courage; be not afraid, neither be thou dismayed: for the LORD thy God is with thee whithersoever thou goest.", TranslationName: "KJV"},
	{Reference: "Psalm 119:105", Text: "Thy word is a lamp unto my feet, and a light unto my path.", TranslationName: "KJV"},
	{Reference: "Romans 12:2", Text: "And be not conformed to this world: but be ye transformed by the renewing of your mind, that ye may prove what is that good, and acceptable, and perfect, will of God.", TranslationName: "KJV"},
	{Reference: "Galatians 2:20", Text: "I am crucified with Christ: nevertheless I live; yet not I, but Christ liveth in me: and the life which I now live in the flesh I live by the faith of the Son of God, who loved me, and gave himself for me.", TranslationName: "KJV"},
	{Reference: "1 John 1:9", Text: "If we confess our sins, he is faithful and just to forgive us our sins, and to cleanse us from all unrighteousness.", TranslationName: "KJV"},
	{Reference: "Ephesians 2:8", Text: "For by grace are ye saved through faith; and that not of yourselves: it is the gift of God:", TranslationName: "KJV"},
	{Reference: "Ephesians 2:9", Text: "Not of works, lest any man should boast.", TranslationName: "KJV"},
	{Reference: "Psalm 34:8", Text: "O taste and see that the LORD is good: blessed is the man that trusteth in him.", TranslationName: "KJV"},
	{Reference: "John 1:1", Text: "In the beginning was the Word, and the Word was with God, and the Word was God.", TranslationName: "KJV"},
	{Reference: "John 1:14", Text: "And the Word was made flesh, and dwelt among us, (and we beheld his glory, the glory as of the only begotten of the Father,) full of grace and truth.", TranslationName: "KJV"},
	{Reference: "Psalm 37:4", Text: "Delight thyself also in the LORD; and he shall give thee the desires of thine heart.", TranslationName: "KJV"},
	{Reference: "Matthew 6:33", Text: "But seek ye first the kingdom of God, and his righteousness; and all these things shall be added unto you.", TranslationName: "KJV"},
	{Reference: "Hebrews 13:5", Text: "Let your conversation be without covetousness; and be content with such things as ye have: for he hath said, I will never leave thee, nor forsake thee.", TranslationName: "KJV"},
	{Reference: "John 15:13", Text: "Greater love hath no man than this, that a man lay down his life for his friends.", TranslationName: "KJV"},
	{Reference: "Psalm 27:1", Text: "The LORD is my light and my salvation; whom shall I fear? the LORD is the strength of my life; of whom shall I be afraid?", TranslationName: "KJV"},
	{Reference: "Isaiah 53:5", Text: "But he was wounded for our transgressions, he was bruised for our iniquities: the chastisement of our peace was upon him; and with his stripes we are healed.", TranslationName: "KJV"},
	{Reference: "Romans 10:9", Text: "That if thou shalt confess with thy mouth the Lord Jesus, and shalt believe in thine heart that God hath raised him from the dead, thou shalt be saved.", TranslationName: "KJV"},
	{Reference: "Romans 10:10", Text: "For with the heart man believeth unto righteousness; and with the mouth confession is made unto salvation.", TranslationName: "KJV"},
}
